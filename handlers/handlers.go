package handlers

import (
	"travelog/models"
	"travelog/places"
)

// Places is the resolver service behind all handlers, wired in main
var Places *places.Service

func Init(service *places.Service) {
	Places = service
}

type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PlaceInfo struct {
	PlaceID      string       `json:"placeId"`
	Name         string       `json:"name"`
	Types        []string     `json:"types"`
	Rating       float64      `json:"rating"`
	PriceLevel   int          `json:"priceLevel"`
	OpeningHours []string     `json:"openingHours"`
	Photos       []string     `json:"photos"`
	Location     LocationInfo `json:"location"`
	Timezone     string       `json:"timezone"`
}

func toPlaceInfo(place *models.Place) PlaceInfo {
	return PlaceInfo{
		PlaceID:      place.PlaceID,
		Name:         place.Name,
		Types:        place.TypeTags(),
		Rating:       place.Rating,
		PriceLevel:   place.PriceLevel,
		OpeningHours: place.OpeningHours,
		Photos:       place.PhotoIDs(),
		Location:     LocationInfo{Latitude: place.Latitude, Longitude: place.Longitude},
		Timezone:     place.Timezone,
	}
}

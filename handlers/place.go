package handlers

import (
	"errors"
	"net/http"

	"travelog/models"
	"travelog/places"

	"github.com/gin-gonic/gin"
)

type PlaceCreateRequest struct {
	PlaceID         string   `json:"placeId" binding:"required"`
	Name            string   `json:"name"`
	Types           []string `json:"types"`
	Rating          float64  `json:"rating"`
	PriceLevel      int      `json:"priceLevel" binding:"gte=0,lte=4"`
	OpeningHours    []string `json:"openingHours"`
	PhotoReferences []string `json:"photoReferences"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
}

func PlaceList(c *gin.Context) {
	stored, err := Places.ListPlaces()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	result := make([]PlaceInfo, 0, len(stored))
	for i := range stored {
		result = append(result, toPlaceInfo(&stored[i]))
	}
	c.JSON(http.StatusOK, result)
}

func PlaceGet(c *gin.Context) {
	placeID := c.Param("placeId")
	if placeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing place id"})
		return
	}
	place, err := Places.Resolve(c.Request.Context(), placeID)
	if err != nil {
		if errors.Is(err, places.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toPlaceInfo(place))
}

func PlaceCreate(c *gin.Context, user *models.User) {
	postReq := PlaceCreateRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	place, err := Places.CreatePlace(c.Request.Context(), places.CreateFields{
		PlaceID:         postReq.PlaceID,
		Name:            postReq.Name,
		Types:           postReq.Types,
		Rating:          postReq.Rating,
		PriceLevel:      postReq.PriceLevel,
		OpeningHours:    postReq.OpeningHours,
		PhotoReferences: postReq.PhotoReferences,
		Latitude:        postReq.Latitude,
		Longitude:       postReq.Longitude,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toPlaceInfo(place))
}

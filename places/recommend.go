package places

import "context"

const (
	recommendationRadius = 500.0 // meters
	recommendationLimit  = 10
)

// Recommendation is a nearby-search hit with the price level already
// normalized. Nothing here is persisted.
type Recommendation struct {
	PlaceID    string  `json:"placeId"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	PriceLevel int     `json:"priceLevel"`
}

// Recommendations is a pass-through to the external nearby search
func (s *Service) Recommendations(ctx context.Context, latitude, longitude float64, placeType string) ([]Recommendation, error) {
	nearby, err := s.Client.SearchNearby(ctx, latitude, longitude, placeType, recommendationRadius, recommendationLimit)
	if err != nil {
		return nil, err
	}
	result := make([]Recommendation, 0, len(nearby))
	for _, place := range nearby {
		rec := Recommendation{
			PlaceID:    place.ID,
			PriceLevel: NormalizePriceLevel(place.PriceLevel),
		}
		if place.DisplayName != nil {
			rec.Name = place.DisplayName.Text
		}
		if place.Rating != nil {
			rec.Rating = *place.Rating
		}
		result = append(result, rec)
	}
	return result, nil
}

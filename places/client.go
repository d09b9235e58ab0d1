package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"travelog/config"
)

const detailsFieldMask = "id,displayName,rating,priceLevel,types,currentOpeningHours.weekdayDescriptions,location,photos.name"

type DisplayName struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type OpeningHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PhotoRef struct {
	// Resource name, e.g. "places/{placeId}/photos/{reference}"
	Name string `json:"name"`
}

// PlaceDetails is the subset of the Places API (v1) place resource we ask for
type PlaceDetails struct {
	ID                  string        `json:"id"`
	DisplayName         *DisplayName  `json:"displayName"`
	Rating              *float64      `json:"rating"`
	PriceLevel          string        `json:"priceLevel"`
	Types               []string      `json:"types"`
	CurrentOpeningHours *OpeningHours `json:"currentOpeningHours"`
	Location            *LatLng       `json:"location"`
	Photos              []PhotoRef    `json:"photos"`
}

type NearbyPlace struct {
	ID          string       `json:"id"`
	DisplayName *DisplayName `json:"displayName"`
	Rating      *float64     `json:"rating"`
	PriceLevel  string       `json:"priceLevel"`
}

type nearbyResponse struct {
	Places []NearbyPlace `json:"places"`
}

// Client talks to the Google Places API (v1). It enforces a bounded timeout
// per call and retries transient transport failures only.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	MaxRetries int
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: "https://places.googleapis.com/v1",
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.PLACES_TIMEOUT_SECONDS) * time.Second,
		},
		MaxRetries: config.PLACES_MAX_RETRIES,
	}
}

// do runs the request built by build, retrying transport errors and 5xx
// responses. 404s and other 4xx are final.
func (c *Client) do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &ApiError{Err: ctx.Err()}
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}
		req, err := build()
		if err != nil {
			return nil, &ApiError{Err: err}
		}
		req = req.WithContext(ctx)
		req.Header.Set("X-Goog-Api-Key", c.APIKey)
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil, ErrNotFound
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &ApiError{StatusCode: resp.StatusCode}
		}
		return resp, nil
	}
	return nil, &ApiError{Err: lastErr}
}

func (c *Client) FetchDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	url := c.BaseURL + "/places/" + placeID
	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest("GET", url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Goog-FieldMask", detailsFieldMask)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	result := &PlaceDetails{}
	if err = json.NewDecoder(resp.Body).Decode(result); err != nil {
		log.Printf("Bad response from %s: %v", url, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return result, nil
}

// FetchPhoto downloads a photo binary by reference, capped at maxWidthPx
func (c *Client) FetchPhoto(ctx context.Context, placeID, photoReference string, maxWidthPx int) ([]byte, error) {
	url := fmt.Sprintf("%s/places/%s/photos/%s/media?maxWidthPx=%d", c.BaseURL, placeID, photoReference, maxWidthPx)
	resp, err := c.do(ctx, func() (*http.Request, error) {
		return http.NewRequest("GET", url, nil)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ApiError{Err: err}
	}
	return data, nil
}

// SearchNearby returns up to maxResults places of the given type within
// radiusMeters of the coordinates
func (c *Client) SearchNearby(ctx context.Context, latitude, longitude float64, placeType string, radiusMeters float64, maxResults int) ([]NearbyPlace, error) {
	body := map[string]interface{}{
		"includedTypes":  []string{placeType},
		"maxResultCount": maxResults,
		"locationRestriction": map[string]interface{}{
			"circle": map[string]interface{}{
				"center": map[string]float64{
					"latitude":  latitude,
					"longitude": longitude,
				},
				"radius": radiusMeters,
			},
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := c.BaseURL + "/places:searchNearby"
	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest("POST", url, bytes.NewReader(jsonBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Goog-FieldMask", "places.id,places.displayName,places.rating,places.priceLevel")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	result := nearbyResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return result.Places, nil
}

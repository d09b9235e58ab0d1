package places

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"travelog/config"
	"travelog/models"
	"travelog/storage"

	"github.com/zsefvlol/timezonemapper"
	"gorm.io/gorm"
)

const photoSegment = "/photos/"

// CreateFields is a fully normalized place, ready to be persisted. Anything
// arriving from the external API goes through normalizeDetails first.
type CreateFields struct {
	PlaceID         string
	Name            string
	Types           []string
	Rating          float64
	PriceLevel      int
	OpeningHours    []string
	PhotoReferences []string
	Latitude        float64
	Longitude       float64
}

// Service resolves places cache-aside: the store is consulted first and the
// external Places API only on a miss, with the normalized result written back.
type Service struct {
	DB            *gorm.DB
	Client        *Client
	Storage       storage.StorageAPI
	Types         *TypeRegistry
	MaxPhotos     int
	PhotoMaxWidth int
	flights       flightGroup
}

func NewService(db *gorm.DB, client *Client, store storage.StorageAPI) *Service {
	return &Service{
		DB:            db,
		Client:        client,
		Storage:       store,
		Types:         NewTypeRegistry(db),
		MaxPhotos:     config.MAX_PHOTOS_PER_PLACE,
		PhotoMaxWidth: config.PHOTO_MAX_WIDTH_PX,
		flights:       newFlightGroup(),
	}
}

func (s *Service) getByPlaceID(placeID string) (*models.Place, error) {
	place := &models.Place{}
	err := s.DB.Preload("PlaceTypes").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("photos.id") }).
		First(place, "place_id = ?", placeID).Error
	if err != nil {
		return nil, err
	}
	return place, nil
}

// Resolve returns the stored place for placeID, fetching, normalizing and
// persisting it from the external API on a miss. Concurrent calls for the
// same unseen ID share a single fetch.
func (s *Service) Resolve(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := s.getByPlaceID(placeID)
	if err == nil {
		return place, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.flights.Do(placeID, func() (*models.Place, error) {
		// A concurrent call may have just created it
		place, err := s.getByPlaceID(placeID)
		if err == nil {
			return place, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		details, err := s.Client.FetchDetails(ctx, placeID)
		if err != nil {
			// Callers get a uniform not-found; the API failure itself still
			// needs to be visible in the logs
			if !errors.Is(err, ErrNotFound) {
				log.Printf("Places API lookup failed for %s: %v", placeID, err)
			}
			return nil, fmt.Errorf("place %s: %w", placeID, ErrNotFound)
		}
		fields, err := normalizeDetails(details)
		if err != nil {
			log.Printf("Unusable Places API response for %s: %v", placeID, err)
			return nil, fmt.Errorf("place %s: %w", placeID, ErrNotFound)
		}
		return s.CreatePlace(ctx, fields)
	})
}

// normalizeDetails converts an external payload into CreateFields, applying
// the documented defaults for absent values
func normalizeDetails(details *PlaceDetails) (CreateFields, error) {
	fields := CreateFields{Types: []string{}, OpeningHours: []string{}, PhotoReferences: []string{}}
	if details.ID == "" {
		return fields, ErrInvalidPayload
	}
	fields.PlaceID = details.ID
	if details.DisplayName != nil {
		fields.Name = details.DisplayName.Text
	}
	if details.Types != nil {
		fields.Types = details.Types
	}
	if details.Rating != nil {
		fields.Rating = *details.Rating
	}
	fields.PriceLevel = NormalizePriceLevel(details.PriceLevel)
	if details.CurrentOpeningHours != nil && details.CurrentOpeningHours.WeekdayDescriptions != nil {
		fields.OpeningHours = details.CurrentOpeningHours.WeekdayDescriptions
	}
	for _, photo := range details.Photos {
		if ref, ok := extractPhotoReference(photo.Name); ok {
			fields.PhotoReferences = append(fields.PhotoReferences, ref)
		}
	}
	if details.Location != nil {
		fields.Latitude = details.Location.Latitude
		fields.Longitude = details.Location.Longitude
	}
	return fields, nil
}

// extractPhotoReference pulls the reference out of a photo resource name
// such as "places/{placeId}/photos/{reference}"
func extractPhotoReference(name string) (string, bool) {
	idx := strings.LastIndex(name, photoSegment)
	if idx < 0 {
		return "", false
	}
	ref := name[idx+len(photoSegment):]
	if ref == "" {
		return "", false
	}
	return ref, true
}

// CreatePlace persists a place built from normalized fields: the place row
// with its type associations first, then the initial photos. If photo
// persistence fails the place is rolled back so readers never see a partial
// record.
func (s *Service) CreatePlace(ctx context.Context, fields CreateFields) (*models.Place, error) {
	placeTypes, err := s.resolveTypes(fields.Types)
	if err != nil {
		return nil, err
	}
	place := models.Place{
		PlaceID:      fields.PlaceID,
		CreatedAt:    time.Now().Unix(),
		Name:         fields.Name,
		Rating:       fields.Rating,
		PriceLevel:   fields.PriceLevel,
		OpeningHours: fields.OpeningHours,
		Latitude:     fields.Latitude,
		Longitude:    fields.Longitude,
		Timezone:     timezonemapper.LatLngToTimezoneString(fields.Latitude, fields.Longitude),
		PlaceTypes:   placeTypes,
	}
	if err = s.DB.Create(&place).Error; err != nil {
		// A concurrent creator beat us to the unique place_id index
		if existing, retryErr := s.getByPlaceID(fields.PlaceID); retryErr == nil {
			return existing, nil
		}
		return nil, err
	}
	photos, err := s.AcquirePhotos(ctx, fields.PhotoReferences, &place)
	if err != nil {
		s.rollbackPlace(&place, photos)
		return nil, err
	}
	place.Photos = photos
	return &place, nil
}

func (s *Service) resolveTypes(tags []string) ([]models.PlaceType, error) {
	seen := make(map[string]bool, len(tags))
	result := make([]models.PlaceType, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		placeType, err := s.Types.FindOrCreate(tag)
		if err != nil {
			return nil, err
		}
		result = append(result, placeType)
	}
	return result, nil
}

// rollbackPlace removes a partially created place: photo payloads, photo
// rows, type associations and the place row itself
func (s *Service) rollbackPlace(place *models.Place, photos []models.Photo) {
	for i := range photos {
		if err := s.Storage.Delete(photos[i].GetPath()); err != nil {
			log.Printf("Rollback: cannot delete payload %s: %v", photos[i].GetPath(), err)
		}
	}
	if err := s.DB.Where("place_id = ?", place.ID).Delete(&models.Photo{}).Error; err != nil {
		log.Printf("Rollback: cannot delete photos of place %d: %v", place.ID, err)
	}
	if err := s.DB.Model(place).Association("PlaceTypes").Clear(); err != nil {
		log.Printf("Rollback: cannot clear types of place %d: %v", place.ID, err)
	}
	if err := s.DB.Delete(place).Error; err != nil {
		log.Printf("Rollback: cannot delete place %d: %v", place.ID, err)
	}
}

// ListPlaces returns all stored places with their associations
func (s *Service) ListPlaces() ([]models.Place, error) {
	var result []models.Place
	err := s.DB.Preload("PlaceTypes").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("photos.id") }).
		Order("places.id").
		Find(&result).Error
	return result, err
}

// GetPhotoByID returns the payload and mime type of a stored photo.
// Pure store read, no external calls.
func (s *Service) GetPhotoByID(photoID string) ([]byte, string, error) {
	var photo models.Photo
	if err := s.DB.First(&photo, "photo_id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("photo %s: %w", photoID, ErrNotFound)
		}
		return nil, "", err
	}
	buf := bytes.Buffer{}
	if _, err := s.Storage.Load(photo.GetPath(), &buf); err != nil {
		return nil, "", fmt.Errorf("photo %s payload: %w", photoID, err)
	}
	return buf.Bytes(), photo.MimeType, nil
}

// GetPhotoIDsByPlaceID returns the photo identifiers of a stored place in
// creation order. Pure store read, no external calls.
func (s *Service) GetPhotoIDsByPlaceID(placeID string) ([]string, error) {
	var place models.Place
	if err := s.DB.First(&place, "place_id = ?", placeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("place %s: %w", placeID, ErrNotFound)
		}
		return nil, err
	}
	var photos []models.Photo
	if err := s.DB.Where("place_id = ?", place.ID).Order("id").Find(&photos).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(photos))
	for _, photo := range photos {
		ids = append(ids, photo.PhotoID)
	}
	return ids, nil
}

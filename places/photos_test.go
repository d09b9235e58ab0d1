package places

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"reflect"
	"testing"

	"travelog/models"
	"travelog/storage"
)

// brokenStorage fails every Save while leaving reads and deletes working,
// so persistence failures mid photo creation can be simulated
type brokenStorage struct {
	storage.StorageAPI
}

func (s *brokenStorage) Save(path string, reader io.Reader) (int64, error) {
	return 0, errors.New("bucket unavailable")
}

func createTestPlace(t *testing.T, service *Service, placeID string) *models.Place {
	t.Helper()
	place := &models.Place{PlaceID: placeID, Name: "Photo Host"}
	if err := service.DB.Create(place).Error; err != nil {
		t.Fatalf("cannot create place: %v", err)
	}
	return place
}

func TestAcquirePhotosCap(t *testing.T) {
	api := newFakeAPI(t)
	api.photoData["r1"] = []byte("one")
	api.photoData["r2"] = []byte("two")
	api.photoData["r3"] = []byte("three")
	service := newTestService(t, api)
	place := createTestPlace(t, service, "capped")

	photos, err := service.AcquirePhotos(context.Background(), []string{"r1", "r2", "r3"}, place)
	if err != nil {
		t.Fatalf("AcquirePhotos: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("photos = %d, want 2", len(photos))
	}
	// Only the first two references are ever fetched
	if got := api.photoCallLog(); !reflect.DeepEqual(got, []string{"r1", "r2"}) {
		t.Errorf("fetched = %v, want [r1 r2]", got)
	}
	first, _, err := service.GetPhotoByID(photos[0].PhotoID)
	if err != nil {
		t.Fatalf("GetPhotoByID: %v", err)
	}
	if !bytes.Equal(first, []byte("one")) {
		t.Errorf("first payload = %q, want %q", first, "one")
	}
}

func TestAcquirePhotosFewerReferences(t *testing.T) {
	api := newFakeAPI(t)
	api.photoData["solo"] = []byte("solo")
	service := newTestService(t, api)
	place := createTestPlace(t, service, "single")

	photos, err := service.AcquirePhotos(context.Background(), []string{"solo"}, place)
	if err != nil {
		t.Fatalf("AcquirePhotos: %v", err)
	}
	if len(photos) != 1 {
		t.Errorf("photos = %d, want 1", len(photos))
	}
}

func TestAcquirePhotosSkipsFailedFetch(t *testing.T) {
	api := newFakeAPI(t)
	// "bad" is not registered, so its fetch 404s
	api.photoData["good1"] = []byte("g1")
	api.photoData["good2"] = []byte("g2")
	service := newTestService(t, api)
	place := createTestPlace(t, service, "partial")

	photos, err := service.AcquirePhotos(context.Background(), []string{"bad", "good1", "good2"}, place)
	if err != nil {
		t.Fatalf("AcquirePhotos: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("photos = %d, want 2 after skipping the failed reference", len(photos))
	}
	p1, _, _ := service.GetPhotoByID(photos[0].PhotoID)
	p2, _, _ := service.GetPhotoByID(photos[1].PhotoID)
	if !bytes.Equal(p1, []byte("g1")) || !bytes.Equal(p2, []byte("g2")) {
		t.Errorf("payloads out of order: %q, %q", p1, p2)
	}
}

func TestCreatePlaceRollsBackOnPhotoWriteFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.photoData["ref1"] = []byte("payload")
	service := newTestService(t, api)
	service.Storage = &brokenStorage{StorageAPI: service.Storage}

	_, err := service.CreatePlace(context.Background(), CreateFields{
		PlaceID:         "doomed",
		Name:            "Never Visible",
		Types:           []string{"cafe"},
		PhotoReferences: []string{"ref1"},
	})
	if err == nil {
		t.Fatal("expected an error when the photo payload cannot be written")
	}

	// No partial place may be left behind for readers
	var placeCount int64
	if err = service.DB.Model(&models.Place{}).Where("place_id = ?", "doomed").Count(&placeCount).Error; err != nil {
		t.Fatalf("count places: %v", err)
	}
	if placeCount != 0 {
		t.Errorf("place rows = %d, want 0 after rollback", placeCount)
	}
	var photoCount int64
	if err = service.DB.Model(&models.Photo{}).Count(&photoCount).Error; err != nil {
		t.Fatalf("count photos: %v", err)
	}
	if photoCount != 0 {
		t.Errorf("photo rows = %d, want 0 after rollback", photoCount)
	}
	if _, err = service.Resolve(context.Background(), "doomed"); !errors.Is(err, ErrNotFound) {
		// The fake API serves no details for "doomed", so a clean store
		// must report not-found rather than a leftover record
		t.Errorf("Resolve after rollback = %v, want ErrNotFound", err)
	}
}

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil); err != nil {
		t.Fatalf("cannot encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestPreparePhotoPayload(t *testing.T) {
	t.Run("oversize image is downscaled", func(t *testing.T) {
		data := encodeTestJPEG(t, 800, 600)
		payload, mimeType, width, height := preparePhotoPayload(data, 400)
		if width != 400 || height != 300 {
			t.Errorf("dimensions = %dx%d, want 400x300", width, height)
		}
		if mimeType != "image/jpeg" {
			t.Errorf("mimeType = %q, want image/jpeg", mimeType)
		}
		if len(payload) == 0 {
			t.Error("empty payload")
		}
	})
	t.Run("small image is kept as-is", func(t *testing.T) {
		data := encodeTestJPEG(t, 200, 100)
		payload, _, width, height := preparePhotoPayload(data, 400)
		if !bytes.Equal(payload, data) {
			t.Error("payload was modified")
		}
		if width != 200 || height != 100 {
			t.Errorf("dimensions = %dx%d, want 200x100", width, height)
		}
	})
	t.Run("non-image payload is kept as-is", func(t *testing.T) {
		data := []byte("not an image")
		payload, _, _, _ := preparePhotoPayload(data, 400)
		if !bytes.Equal(payload, data) {
			t.Error("payload was modified")
		}
	})
}

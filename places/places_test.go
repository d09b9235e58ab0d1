package places

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"travelog/models"
	"travelog/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeAPI stands in for the external Places API and records every call
type fakeAPI struct {
	mu          sync.Mutex
	detailCalls int
	photoCalls  []string
	details     map[string]string // placeID -> response JSON
	photoData   map[string][]byte // reference -> payload
	server      *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		details:   map[string]string{},
		photoData: map[string][]byte{},
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))
	t.Cleanup(api.server.Close)
	return api
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := r.URL.Path
	if strings.HasSuffix(path, "/media") {
		parts := strings.Split(path, "/")
		reference := parts[len(parts)-2]
		f.photoCalls = append(f.photoCalls, reference)
		data, ok := f.photoData[reference]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)
		return
	}
	if strings.HasPrefix(path, "/places/") {
		f.detailCalls++
		body, ok := f.details[strings.TrimPrefix(path, "/places/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *fakeAPI) detailCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailCalls
}

func (f *fakeAPI) photoCallLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.photoCalls...)
}

func newTestService(t *testing.T, api *fakeAPI) *Service {
	t.Helper()
	dsn := "file:" + t.TempDir() + "/test.db?_busy_timeout=5000&_journal_mode=WAL"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("cannot open test DB: %v", err)
	}
	if err = gormDB.AutoMigrate(&models.Place{}, &models.PlaceType{}, &models.Photo{}); err != nil {
		t.Fatalf("cannot migrate test DB: %v", err)
	}
	client := &Client{
		BaseURL:    api.server.URL,
		APIKey:     "test-key",
		HTTPClient: api.server.Client(),
		MaxRetries: 0,
	}
	store := storage.NewDiskStorage(&storage.Bucket{
		ID:          1,
		StorageType: storage.StorageTypeFile,
		Path:        t.TempDir(),
	})
	service := NewService(gormDB, client, store)
	service.MaxPhotos = 2
	service.PhotoMaxWidth = 400
	return service
}

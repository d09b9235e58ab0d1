package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(server *httptest.Server, retries int) *Client {
	return &Client{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		HTTPClient: server.Client(),
		MaxRetries: retries,
	}
}

func TestFetchDetailsRetriesTransientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"id": "ok1"}`))
	}))
	defer server.Close()

	details, err := testClient(server, 2).FetchDetails(context.Background(), "ok1")
	if err != nil {
		t.Fatalf("FetchDetails: %v", err)
	}
	if details.ID != "ok1" {
		t.Errorf("id = %q, want ok1", details.ID)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestFetchDetailsDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := testClient(server, 2).FetchDetails(context.Background(), "denied")
	apiErr := &ApiError{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("err = %v, want ApiError with status 403", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestFetchDetailsNotFound(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server, 2).FetchDetails(context.Background(), "gone")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, not-found must not be retried", attempts)
	}
}

func TestFetchDetailsRetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server, 1).FetchDetails(context.Background(), "down")
	apiErr := &ApiError{}
	if !errors.As(err, &apiErr) {
		t.Errorf("err = %v, want ApiError", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("exhausted retries must not read as not-found at the client level")
	}
}

func TestFetchDetailsSendsHeaders(t *testing.T) {
	var gotKey, gotMask string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Goog-Api-Key")
		gotMask = r.Header.Get("X-Goog-FieldMask")
		_, _ = w.Write([]byte(`{"id": "h1"}`))
	}))
	defer server.Close()

	if _, err := testClient(server, 0).FetchDetails(context.Background(), "h1"); err != nil {
		t.Fatalf("FetchDetails: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotMask != detailsFieldMask {
		t.Errorf("field mask header = %q", gotMask)
	}
}

func TestFetchPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places/p1/photos/ref9/media" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("maxWidthPx") != "400" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte{0x01, 0x02, 0x03})
	}))
	defer server.Close()

	data, err := testClient(server, 0).FetchPhoto(context.Background(), "p1", "ref9", 400)
	if err != nil {
		t.Fatalf("FetchPhoto: %v", err)
	}
	if !bytes.Equal(data, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("data = %v", data)
	}
}

func TestSearchNearby(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places:searchNearby" || r.Method != "POST" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			IncludedTypes  []string `json:"includedTypes"`
			MaxResultCount int      `json:"maxResultCount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.IncludedTypes) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"places": [
			{"id": "n1", "displayName": {"text": "Nearby Cafe"}, "rating": 4.1, "priceLevel": "PRICE_LEVEL_INEXPENSIVE"}
		]}`))
	}))
	defer server.Close()

	nearby, err := testClient(server, 0).SearchNearby(context.Background(), 47.5, 19.0, "cafe", 500, 10)
	if err != nil {
		t.Fatalf("SearchNearby: %v", err)
	}
	if len(nearby) != 1 || nearby[0].ID != "n1" {
		t.Fatalf("nearby = %+v", nearby)
	}
	if nearby[0].DisplayName == nil || nearby[0].DisplayName.Text != "Nearby Cafe" {
		t.Errorf("displayName = %+v", nearby[0].DisplayName)
	}
}

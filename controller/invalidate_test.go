package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folio-cc/folio/cache"
)

type mapStore struct {
	items map[string][]byte
}

func (s *mapStore) Get(key string) ([]byte, error) {
	value, ok := s.items[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return value, nil
}

func (s *mapStore) Set(key string, value []byte, timeToLive int32) error {
	s.items[key] = value
	return nil
}

func (s *mapStore) Delete(key string) error {
	if _, ok := s.items[key]; !ok {
		return cache.ErrCacheMiss
	}
	delete(s.items, key)
	return nil
}

func TestInvalidationHandlerUnknownTarget(t *testing.T) {
	store := &mapStore{items: map[string][]byte{"github:starred": []byte(`[]`)}}
	cache.InitCacheStore(store)

	r := httptest.NewRequest("GET", "/api/cache/invalidate?target=foo", nil)
	w := httptest.NewRecorder()
	InvalidationHandler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var body InvalidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshalling body: %+v", err)
	}
	if body.Error == "" {
		t.Error("error should name the rejected target")
	}
	if len(body.Available) == 0 ||
		body.Available[len(body.Available)-1] != "all" {
		t.Errorf("available = %v, want the valid targets ending in all", body.Available)
	}

	if _, ok := store.items["github:starred"]; !ok {
		t.Error("an unknown target must not delete any keys")
	}
}

func TestInvalidationHandlerSuccess(t *testing.T) {
	store := &mapStore{items: map[string][]byte{
		"github:contributions": []byte(`{}`),
		"github:starred":       []byte(`[]`),
	}}
	cache.InitCacheStore(store)

	r := httptest.NewRequest("GET", "/api/cache/invalidate?target=github", nil)
	w := httptest.NewRecorder()
	InvalidationHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body InvalidationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshalling body: %+v", err)
	}
	if !body.Success {
		t.Error("success should be true")
	}
	if body.Deleted != 2 || body.Failed != 0 {
		t.Errorf("deleted %d failed %d, want 2 and 0", body.Deleted, body.Failed)
	}
	if len(body.Keys) != 2 {
		t.Errorf("keys = %v, want both github keys", body.Keys)
	}
	if len(store.items) != 0 {
		t.Errorf("store still holds %v", store.items)
	}
}

func TestInvalidationHandlerMethodNotAllowed(t *testing.T) {
	cache.InitCacheStore(&mapStore{items: map[string][]byte{}})

	r := httptest.NewRequest("PUT", "/api/cache/invalidate?target=all", nil)
	w := httptest.NewRecorder()
	InvalidationHandler(w, r)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestDataHandlerServedFromCache(t *testing.T) {
	stored := []byte(`{"total":7,"days":[]}`)
	store := &mapStore{items: map[string][]byte{"github:contributions": stored}}
	cache.InitCacheStore(store)

	r := httptest.NewRequest("GET", "/api/github/contributions", nil)
	w := httptest.NewRecorder()
	ContributionsHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Header().Get("X-Cache") != "hit" {
		t.Errorf("X-Cache = %s, want hit", w.Header().Get("X-Cache"))
	}
	// A hit is byte-identical to what was stored for the key
	if !bytes.Equal(w.Body.Bytes(), stored) {
		t.Errorf("body = %s, want the stored bytes %s", w.Body.Bytes(), stored)
	}
}

func TestVersionHandler(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()
	VersionHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshalling body: %+v", err)
	}
	if body["version"] != BuildVersion {
		t.Errorf("version = %s, want %s", body["version"], BuildVersion)
	}
}

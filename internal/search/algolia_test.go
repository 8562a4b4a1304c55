package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shupin-market/internal/config"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *AlgoliaIndex {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	index, err := NewAlgoliaIndex(&config.SearchConfig{
		AppID:     "TESTAPP",
		APIKey:    "test-key",
		IndexName: "products",
		BaseURL:   server.URL,
	})
	if err != nil {
		t.Fatalf("NewAlgoliaIndex failed: %v", err)
	}
	return index
}

func TestAlgoliaIndexUpsert(t *testing.T) {
	var gotMethod, gotPath, gotAppID, gotAPIKey string
	var gotRecord Record

	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAppID = r.Header.Get("X-Algolia-Application-Id")
		gotAPIKey = r.Header.Get("X-Algolia-API-Key")
		json.NewDecoder(r.Body).Decode(&gotRecord)
		w.Write([]byte(`{"taskID":1}`))
	})

	record := Record{
		ObjectID:    "42",
		Title:       "Go in Practice",
		Description: "An e-book about Go",
		Price:       19.99,
		Category:    "E-books",
		Images:      []string{"https://cdn.example.com/images/a.png"},
		Slug:        "go-in-practice",
	}
	if err := index.Upsert(context.Background(), record); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/1/indexes/products/42" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAppID != "TESTAPP" || gotAPIKey != "test-key" {
		t.Fatalf("unexpected auth headers: %s / %s", gotAppID, gotAPIKey)
	}
	if gotRecord.ObjectID != "42" || gotRecord.Category != "E-books" {
		t.Fatalf("unexpected record payload: %+v", gotRecord)
	}
}

func TestAlgoliaIndexDelete(t *testing.T) {
	var gotMethod, gotPath string
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"taskID":2}`))
	})

	if err := index.Delete(context.Background(), "42"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", gotMethod)
	}
	if gotPath != "/1/indexes/products/42" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestAlgoliaIndexUpsertRequiresObjectID(t *testing.T) {
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	err := index.Upsert(context.Background(), Record{Title: "no id"})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestAlgoliaIndexErrorStatus(t *testing.T) {
	index := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := index.Delete(context.Background(), "42")
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}

func TestNewAlgoliaIndexConfigValidation(t *testing.T) {
	_, err := NewAlgoliaIndex(&config.SearchConfig{AppID: "APP"})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
	_, err = NewAlgoliaIndex(&config.SearchConfig{AppID: "APP", APIKey: "key"})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for missing index name, got %v", err)
	}
}

package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eksiir/risk-categories-microservice/internal/platform/middleware"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/service"
	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/store"
	"github.com/eksiir/risk-categories-microservice/internal/status"
)

func newRouter(t *testing.T) (http.Handler, *status.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := status.New("risk-categories-microservice", "test", "test build")
	svc := service.New(store.NewMemory(), logger, nil)

	h := New(svc, registry, logger)
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RequestTime)
	h.Register(r)
	return r, registry
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createCategory(t *testing.T, router http.Handler) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/risk-categories", map[string]any{
		"languageCode":    "en",
		"name":            "Protests",
		"riskLevel":       2,
		"keywords":        []string{"protest"},
		"updatedByUserId": primitive.NewObjectID().Hex(),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating category, got %d: %s", rec.Code, rec.Body.String())
	}
	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode created document: %v", err)
	}
	return doc
}

func TestCreateAndFetchRoundTrip(t *testing.T) {
	router, _ := newRouter(t)
	doc := createCategory(t, router)

	if doc["deleted"] != false {
		t.Fatalf("expected deleted=false, got %v", doc["deleted"])
	}
	if doc["createdAt"] != doc["updatedAt"] {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", doc["createdAt"], doc["updatedAt"])
	}

	rec := doJSON(t, router, http.MethodGet, "/risk-categories/"+doc["id"].(string), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching category, got %d", rec.Code)
	}
	var fetched map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode fetched document: %v", err)
	}
	for _, field := range []string{"id", "deleted", "keywords", "languageCode", "name", "riskLevel", "updatedByUserId", "createdAt", "updatedAt"} {
		if !jsonEqual(doc[field], fetched[field]) {
			t.Fatalf("field %s differs: created %v, fetched %v", field, doc[field], fetched[field])
		}
	}
}

func TestCreateDuplicatePair(t *testing.T) {
	router, _ := newRouter(t)
	createCategory(t, router)

	rec := doJSON(t, router, http.MethodPost, "/risk-categories", map[string]any{
		"languageCode":    "en",
		"name":            "Protests",
		"riskLevel":       3,
		"updatedByUserId": primitive.NewObjectID().Hex(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate pair, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "en") || !strings.Contains(body, "Protests") {
		t.Fatalf("expected duplicate message naming the pair, got %q", body)
	}
}

func TestCreateDeletedRejected(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/risk-categories", map[string]any{
		"deleted":         true,
		"languageCode":    "en",
		"name":            "Protests",
		"riskLevel":       2,
		"updatedByUserId": primitive.NewObjectID().Hex(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Cannot create deleted Risk Category." {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestCreateValidationFailureIs500(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/risk-categories", map[string]any{
		"languageCode":    "en",
		"name":            "Protests",
		"riskLevel":       5,
		"updatedByUserId": primitive.NewObjectID().Hex(),
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for enum violation, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not a valid enum value") {
		t.Fatalf("expected enum message, got %q", rec.Body.String())
	}
}

func TestGetByIDErrors(t *testing.T) {
	router, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/risk-categories/100", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not a valid") {
		t.Fatalf("expected identifier message, got %q", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/risk-categories/"+primitive.NewObjectID().Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unassigned id, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty 404 body, got %q", rec.Body.String())
	}
}

func TestSearch(t *testing.T) {
	router, _ := newRouter(t)
	doc := createCategory(t, router)

	rec := doJSON(t, router, http.MethodPost, "/risk-categories/search", map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 searching, got %d", rec.Code)
	}
	var docs []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&docs); err != nil {
		t.Fatalf("decode search result: %v", err)
	}
	if len(docs) != 1 || docs[0]["id"] != doc["id"] {
		t.Fatalf("expected the created document, got %v", docs)
	}

	rec = doJSON(t, router, http.MethodPost, "/risk-categories/search", map[string]any{"color": "red"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown-field search, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array for unknown field, got %q", body)
	}

	rec = doJSON(t, router, http.MethodPost, "/risk-categories/search", map[string]any{"id": "100"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id in filter, got %d", rec.Code)
	}
}

func TestUpdate(t *testing.T) {
	router, _ := newRouter(t)
	doc := createCategory(t, router)
	id := doc["id"].(string)

	rec := doJSON(t, router, http.MethodPatch, "/risk-categories/"+id, map[string]any{"name": "Riots"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated document: %v", err)
	}
	if updated["name"] != "Riots" {
		t.Fatalf("expected updated name, got %v", updated["name"])
	}
	if updated["updatedAt"] == doc["updatedAt"] {
		t.Fatalf("expected updatedAt to change")
	}

	rec = doJSON(t, router, http.MethodPatch, "/risk-categories/"+id, map[string]any{"id": primitive.NewObjectID().Hex()})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for id in body, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Request body cannot have id." {
		t.Fatalf("unexpected body: %q", got)
	}

	rec = doJSON(t, router, http.MethodPatch, "/risk-categories/"+primitive.NewObjectID().Hex(), map[string]any{"name": "Riots"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating unknown document, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty 404 body, got %q", rec.Body.String())
	}
}

func TestUpdateStripsUnknownFields(t *testing.T) {
	router, _ := newRouter(t)
	doc := createCategory(t, router)

	rec := doJSON(t, router, http.MethodPatch, "/risk-categories/"+doc["id"].(string), map[string]any{
		"name":     "Riots",
		"smuggled": "value",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "smuggled") {
		t.Fatalf("unknown field leaked into response: %s", rec.Body.String())
	}
}

func TestSoftDelete(t *testing.T) {
	router, _ := newRouter(t)
	doc := createCategory(t, router)
	id := doc["id"].(string)

	rec := doJSON(t, router, http.MethodDelete, "/risk-categories/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 soft-deleting, got %d", rec.Code)
	}
	var deleted map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&deleted); err != nil {
		t.Fatalf("decode deleted document: %v", err)
	}
	if deleted["deleted"] != true {
		t.Fatalf("expected deleted=true, got %v", deleted["deleted"])
	}

	// Second delete succeeds with the same outcome.
	rec = doJSON(t, router, http.MethodDelete, "/risk-categories/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat soft delete, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/risk-categories/100", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/risk-categories/"+primitive.NewObjectID().Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	router, registry := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/risk-categories/status", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 before startup completes, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode status body: %v", err)
	}
	if body["Status"] != "Not Ready" {
		t.Fatalf("expected Not Ready, got %q", body["Status"])
	}
	if body["MongoDB"] != "No connection." {
		t.Fatalf("expected default MongoDB field, got %q", body["MongoDB"])
	}

	registry.Set(status.FieldAPI, "Server started on port 3000.")
	registry.SetWithCode(status.FieldMongoDB, "Successfully connected to MongoDB.", http.StatusOK)

	rec = doJSON(t, router, http.MethodGet, "/risk-categories/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 once ready, got %d", rec.Code)
	}
	body = map[string]string{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode status body: %v", err)
	}
	if body["Status"] != "Ready" {
		t.Fatalf("expected Ready, got %q", body["Status"])
	}
	if body["API"] != "Server started on port 3000." {
		t.Fatalf("unexpected API field: %q", body["API"])
	}
}

// jsonEqual compares decoded JSON values, good enough for the flat document
// fields asserted here.
func jsonEqual(a, b any) bool {
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return bytes.Equal(ab, bb)
}

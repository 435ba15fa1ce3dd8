package status

import (
	"net/http"
	"sync"
	"testing"
)

func newTestRegistry() *Registry {
	return New("risk-categories-microservice", "1.0.0", "CRUD operations on the RiskCategory collection")
}

func TestDefaults(t *testing.T) {
	code, fields := newTestRegistry().Snapshot()

	if code != http.StatusInternalServerError {
		t.Fatalf("expected initial code 500, got %d", code)
	}
	want := map[string]string{
		"Status":      "Not Ready",
		"Name":        "risk-categories-microservice",
		"Version":     "1.0.0",
		"Description": "CRUD operations on the RiskCategory collection",
		"AWS Region":  "",
		"API":         "Failed to start the server.",
		"MongoDB":     "No connection.",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Fatalf("field %q: expected %q, got %q", k, v, fields[k])
		}
	}
}

func TestSetDoesNotTouchCode(t *testing.T) {
	r := newTestRegistry()
	r.Set(FieldAPI, "Server started on port 3000.")

	code, fields := r.Snapshot()
	if code != http.StatusInternalServerError {
		t.Fatalf("Set must not change the aggregate code, got %d", code)
	}
	if fields[FieldAPI] != "Server started on port 3000." {
		t.Fatalf("unexpected API field: %q", fields[FieldAPI])
	}
}

func TestSetWithCodeFlipsReadiness(t *testing.T) {
	r := newTestRegistry()
	r.SetWithCode(FieldMongoDB, "Successfully connected to MongoDB.", http.StatusOK)

	code, fields := r.Snapshot()
	if code != http.StatusOK {
		t.Fatalf("expected code 200, got %d", code)
	}
	if fields["Status"] != "Ready" {
		t.Fatalf("expected Ready, got %q", fields["Status"])
	}

	// A later failure without a code keeps the last aggregate code;
	// writes are single-field, last-writer-wins.
	r.Set(FieldMongoDB, "MongoDB connection failure: timeout")
	code, fields = r.Snapshot()
	if code != http.StatusOK {
		t.Fatalf("expected code unchanged, got %d", code)
	}
	if fields[FieldMongoDB] != "MongoDB connection failure: timeout" {
		t.Fatalf("unexpected MongoDB field: %q", fields[FieldMongoDB])
	}
}

func TestSnapshotReturnsCopy(t *testing.T) {
	r := newTestRegistry()
	_, fields := r.Snapshot()
	fields[FieldAPI] = "mutated"

	_, again := r.Snapshot()
	if again[FieldAPI] != "Failed to start the server." {
		t.Fatalf("snapshot leaked internal state: %q", again[FieldAPI])
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := newTestRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.SetWithCode(FieldMongoDB, "Successfully connected to MongoDB.", http.StatusOK)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = r.Snapshot()
			}
		}()
	}
	wg.Wait()

	if r.Code() != http.StatusOK {
		t.Fatalf("expected final code 200, got %d", r.Code())
	}
}

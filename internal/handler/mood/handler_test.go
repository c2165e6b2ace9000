package mood

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	moodmodel "github.com/feelbetterai/backend/internal/model/mood"
	"github.com/feelbetterai/backend/internal/service/dashboard"
	"github.com/feelbetterai/backend/internal/store"
)

func setupRouter(t *testing.T) (*chi.Mux, *store.SQLiteStore) {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	handler := New(st, dashboard.NewService(st))

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, st
}

func TestDashboardRequiresUser(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/mood/dashboard", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestDashboardPayloadShape(t *testing.T) {
	r, st := setupRouter(t)

	_, err := st.CreateMoodEntry(context.Background(), moodmodel.Entry{
		UserID:     "user-1",
		Score:      7,
		RecordedAt: time.Now().UTC().Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/mood/dashboard", nil)
	req.Header.Set("X-User-ID", "user-1")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Trend struct {
			Direction string `json:"direction"`
		} `json:"trend"`
		DailySummaries []struct {
			Date string `json:"date"`
		} `json:"dailySummaries"`
		AverageMood float64 `json:"averageMood"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Trend.Direction == "" {
		t.Fatal("expected a trend direction")
	}
	if len(payload.DailySummaries) != 7 {
		t.Fatalf("expected 7 daily summaries, got %d", len(payload.DailySummaries))
	}
	if payload.AverageMood != 7 {
		t.Fatalf("expected today's average 7, got %f", payload.AverageMood)
	}
}

func TestMoodEntriesWindow(t *testing.T) {
	r, st := setupRouter(t)
	now := time.Now().UTC()

	for _, age := range []time.Duration{time.Hour, 10 * 24 * time.Hour} {
		if _, err := st.CreateMoodEntry(context.Background(), moodmodel.Entry{
			UserID:     "user-1",
			Score:      6,
			RecordedAt: now.Add(-age),
		}); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/mood/entries?days=7", nil)
	req.Header.Set("X-User-ID", "user-1")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var entries []moodmodel.Entry
	if err := json.Unmarshal(resp.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry inside the window, got %d", len(entries))
	}
}

func TestMoodAverage(t *testing.T) {
	r, st := setupRouter(t)
	now := time.Now().UTC()

	for _, score := range []float64{4, 8} {
		if _, err := st.CreateMoodEntry(context.Background(), moodmodel.Entry{
			UserID:     "user-1",
			Score:      score,
			RecordedAt: now.Add(-time.Hour),
		}); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/mood/average", nil)
	req.Header.Set("X-User-ID", "user-1")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	var payload map[string]float64
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["averageMood"] != 6 {
		t.Fatalf("expected average 6, got %f", payload["averageMood"])
	}
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NCpython/smartchefbot/internal/agent"
	"github.com/NCpython/smartchefbot/internal/extract"
	"github.com/NCpython/smartchefbot/internal/menu"
	"github.com/NCpython/smartchefbot/internal/system"
)

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, string, int, float64) (string, error) {
	return "ok", nil
}

type stubExtractor struct{}

func (stubExtractor) ExtractFromPDF(_ context.Context, _ []byte, name string) (*menu.Record, error) {
	return &menu.Record{RestaurantName: name, Items: []menu.Item{}}, nil
}

func (stubExtractor) ExtractFromText(_ context.Context, _ string, name string) (*menu.Record, error) {
	return &menu.Record{RestaurantName: name, Items: []menu.Item{}}, nil
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := t.TempDir()
	extracted := filepath.Join(base, "extracted")
	menus := filepath.Join(base, "menus")
	if err := os.MkdirAll(extracted, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(menus, 0o755); err != nil {
		t.Fatal(err)
	}

	log := zap.NewNop()
	store := menu.NewFileStore(extracted, menus, log)
	svc := menu.NewService(store, stubExtractor{}, extract.NewPDFReader(), nil, log)
	chatAgent := agent.New(store, stubGenerator{}, 0.7, log)

	return New(Handlers{
		Menu:   menu.NewHandler(svc, store),
		Query:  agent.NewHandler(chatAgent),
		System: system.NewHandler(store),
	})
}

func TestHealthRoute(t *testing.T) {
	r := newEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestVersionedRoutesAreMounted(t *testing.T) {
	r := newEngine(t)

	for _, path := range []string{
		"/api/v1/menus",
		"/api/v1/system/health",
		"/api/v1/system/stats",
		"/api/v1/system/version",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected status 200, got %d", path, w.Code)
		}
	}
}

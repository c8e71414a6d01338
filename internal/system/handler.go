package system

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NCpython/smartchefbot/internal/menu"
)

const (
	serviceName = "SmartChefBot API"
	version     = "1.0.0"
)

// Store is the slice of the menu store the system endpoints need.
type Store interface {
	ListNames() ([]string, error)
	Load(name string) (*menu.Record, error)
	ClearAll() error
	DataSize() int64
}

type Handler struct {
	store Store
	start time.Time
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store, start: time.Now()}
}

// --------------------------------------------------
// GET /health and GET /api/v1/system/health
// --------------------------------------------------
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": version,
		"uptime":  time.Since(h.start).Round(10 * time.Millisecond).Seconds(),
	})
}

// --------------------------------------------------
// GET /api/v1/system/stats
// --------------------------------------------------
func (h *Handler) Stats(c *gin.Context) {
	names, err := h.store.ListNames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	totalItems := 0
	for _, name := range names {
		record, err := h.store.Load(name)
		if err != nil {
			continue
		}
		totalItems += record.TotalItems
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"total_menus":  len(names),
		"total_items":  totalItems,
		"restaurants":  names,
		"storage_used": humanSize(h.store.DataSize()),
	})
}

// --------------------------------------------------
// POST /clear and POST /api/v1/system/clear
// --------------------------------------------------
func (h *Handler) Clear(c *gin.Context) {
	if err := h.store.ClearAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All menu data cleared successfully",
		"data": gin.H{
			"cleared_menus": true,
			"cleared_pdfs":  true,
		},
	})
}

// --------------------------------------------------
// GET /api/v1/system/version
// --------------------------------------------------
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     serviceName,
		"version":     version,
		"api_version": "v1",
		"description": "AI-powered restaurant intelligence and compliance assistant",
	})
}

func humanSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

package menu

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	store   Store
}

func NewHandler(service *Service, store Store) *Handler {
	return &Handler{service: service, store: store}
}

// --------------------------------------------------
// List all menus
// GET /menus and GET /api/v1/menus/
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	menus, err := h.service.ListMenus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"menus":   []Summary{},
			"count":   0,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"menus":   menus,
		"count":   len(menus),
	})
}

// --------------------------------------------------
// Upload a menu PDF
// POST /upload and POST /api/v1/menus/upload
// multipart: file, restaurant_name
// --------------------------------------------------
func (h *Handler) Upload(c *gin.Context) {
	restaurantName := c.PostForm("restaurant_name")
	if restaurantName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "restaurant_name is required"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not read uploaded file"})
		return
	}

	record, err := h.service.Upload(c.Request.Context(), restaurantName, header.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": messageFor(record),
		"data": gin.H{
			"restaurant_name": restaurantName,
			"item_count":      record.TotalItems,
		},
	})
}

func messageFor(record *Record) string {
	if record.Error != "" {
		return "Menu uploaded, but extraction failed: " + record.Error
	}
	return fmt.Sprintf("Successfully processed PDF with Gemini! Extracted %d menu items.", record.TotalItems)
}

// --------------------------------------------------
// Get one restaurant's menu
// GET /api/v1/menus/:restaurant_name (and .../items alias)
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	name := c.Param("restaurant_name")

	record, err := h.store.Load(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Restaurant '" + name + "' not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"restaurant_name": name,
		"items":           record.Items,
		"total_items":     len(record.Items),
	})
}

// --------------------------------------------------
// Delete one restaurant's menu (JSON + PDF)
// DELETE /api/v1/menus/:restaurant_name
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	name := c.Param("restaurant_name")

	if err := h.store.Delete(name); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Restaurant '" + name + "' not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully deleted menu for '" + name + "'",
		"data":    gin.H{"restaurant_name": name},
	})
}

// --------------------------------------------------
// Search menu items
// POST /api/v1/items/search  {query, restaurant_name?}
// GET  /api/v1/items/search?q=&restaurant_name=
// --------------------------------------------------

type searchRequest struct {
	Query          string `json:"query" binding:"required"`
	RestaurantName string `json:"restaurant_name"`
}

func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query is required"})
		return
	}
	h.respondSearch(c, req.RestaurantName, req.Query)
}

func (h *Handler) SearchGet(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "q is required"})
		return
	}
	h.respondSearch(c, c.Query("restaurant_name"), query)
}

// GET /api/v1/items/:restaurant_name/search?q=
func (h *Handler) SearchInRestaurant(c *gin.Context) {
	name := c.Param("restaurant_name")

	if _, err := h.store.Load(name); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Restaurant '" + name + "' not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.respondSearch(c, name, c.Query("q"))
}

func (h *Handler) respondSearch(c *gin.Context, restaurantName, query string) {
	if restaurantName != "" {
		items, err := h.store.SearchItems(restaurantName, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"restaurant_name": restaurantName,
			"results":         items,
			"count":           len(items),
		})
		return
	}

	items, err := h.store.SearchAll(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": items,
		"count":   len(items),
	})
}

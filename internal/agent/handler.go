package agent

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	agent *Agent
}

func NewHandler(agent *Agent) *Handler {
	return &Handler{agent: agent}
}

type queryRequest struct {
	Query   string            `json:"query" binding:"required"`
	Context map[string]string `json:"context"`
}

// --------------------------------------------------
// POST /query and POST /api/v1/query/general
// --------------------------------------------------
func (h *Handler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query is required"})
		return
	}

	result := h.agent.Process(c.Request.Context(), req.Query, req.Context)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"response":   result.Response,
		"scratchpad": result.Trace,
		"metadata": gin.H{
			"intent":     result.Intent,
			"query_type": "general",
		},
	})
}

type businessRequest struct {
	Query          string            `json:"query" binding:"required"`
	RestaurantName string            `json:"restaurant_name"`
	Context        map[string]string `json:"context"`
}

// --------------------------------------------------
// POST /api/v1/query/business
// --------------------------------------------------
func (h *Handler) Business(c *gin.Context) {
	var req businessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query is required"})
		return
	}

	reqContext := req.Context
	if req.RestaurantName != "" {
		if reqContext == nil {
			reqContext = map[string]string{}
		}
		reqContext["restaurant_name"] = req.RestaurantName
	}

	result := h.agent.Process(c.Request.Context(), req.Query, reqContext)

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"response":            result.Response,
		"menu_items_analyzed": result.ItemsAnalyzed,
		"scratchpad":          result.Trace,
		"metadata":            gin.H{"intent": result.Intent, "query_type": "business"},
	})
}

type complianceRequest struct {
	Query          string   `json:"query" binding:"required"`
	RestaurantName string   `json:"restaurant_name"`
	Standards      []string `json:"standards"`
}

// --------------------------------------------------
// POST /api/v1/query/compliance
// --------------------------------------------------
func (h *Handler) Compliance(c *gin.Context) {
	var req complianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query is required"})
		return
	}

	reqContext := map[string]string{}
	if req.RestaurantName != "" {
		reqContext["restaurant_name"] = req.RestaurantName
	}
	if len(req.Standards) > 0 {
		reqContext["compliance_standards"] = strings.Join(req.Standards, ", ")
	}

	result := h.agent.Process(c.Request.Context(), req.Query, reqContext)

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"response":            result.Response,
		"menu_items_analyzed": result.ItemsAnalyzed,
		"scratchpad":          result.Trace,
		"metadata":            gin.H{"intent": result.Intent, "query_type": "compliance"},
	})
}

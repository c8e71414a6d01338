package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/NCpython/smartchefbot/internal/agent"
	"github.com/NCpython/smartchefbot/internal/menu"
	"github.com/NCpython/smartchefbot/internal/system"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Menu   *menu.Handler
	Query  *agent.Handler
	System *system.Handler
}

// New builds the gin engine with CORS and all routes. The plain
// top-level routes mirror the v1 ones for clients that predate the
// versioned API.
func New(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/menus", h.Menu.List)
	r.POST("/upload", h.Menu.Upload)
	r.POST("/query", h.Query.Query)
	r.POST("/clear", h.System.Clear)
	r.GET("/health", h.System.Health)

	v1 := r.Group("/api/v1")
	{
		menus := v1.Group("/menus")
		{
			menus.GET("", h.Menu.List)
			menus.POST("/upload", h.Menu.Upload)
			menus.GET("/:restaurant_name", h.Menu.Get)
			menus.GET("/:restaurant_name/items", h.Menu.Get)
			menus.DELETE("/:restaurant_name", h.Menu.Delete)
		}

		items := v1.Group("/items")
		{
			items.POST("/search", h.Menu.Search)
			items.GET("/search", h.Menu.SearchGet)
			items.GET("/:restaurant_name/search", h.Menu.SearchInRestaurant)
		}

		query := v1.Group("/query")
		{
			query.POST("/general", h.Query.Query)
			query.POST("/business", h.Query.Business)
			query.POST("/compliance", h.Query.Compliance)
		}

		sys := v1.Group("/system")
		{
			sys.GET("/health", h.System.Health)
			sys.GET("/stats", h.System.Stats)
			sys.POST("/clear", h.System.Clear)
			sys.GET("/version", h.System.Version)
		}
	}

	return r
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"detailing-api/internal/handler/api"
	"detailing-api/internal/handler/httperr"
	"detailing-api/internal/handler/middleware"
	"detailing-api/internal/pkg/config"
	"detailing-api/internal/ratelimit"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	limiter ratelimit.Limiter,
	bookingHandler *api.BookingHandler,
	contactHandler *api.ContactHandler,
	emailHandler *api.EmailHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, limiter, bookingHandler, contactHandler, emailHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.SecurityHeaders())
	// The origin guard runs before CORS so every cross-site rejection is
	// logged with the offending origin; it skips OPTIONS, leaving preflight
	// to the CORS middleware.
	engine.Use(middleware.OriginGuard(cfg.Server, cfg.Security))
	engine.Use(middleware.NewCORSMiddleware(cfg.Security))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httperr.Response{
			Error: "Method not allowed. Use POST.",
		})
	})
}

func setupRoutes(
	engine *gin.Engine,
	limiter ratelimit.Limiter,
	bookingHandler *api.BookingHandler,
	contactHandler *api.ContactHandler,
	emailHandler *api.EmailHandler,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{
				Method:  http.MethodPost,
				Path:    "/bookings/create",
				Handler: bookingHandler.Create,
				Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, ratelimit.ClassBooking)},
			},
			{
				Method:  http.MethodPost,
				Path:    "/contact/submit",
				Handler: contactHandler.Submit,
				Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, ratelimit.ClassContact)},
			},
			{
				Method:  http.MethodPost,
				Path:    "/emails/send-confirmation",
				Handler: emailHandler.SendConfirmation,
				Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, ratelimit.ClassEmail)},
			},
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

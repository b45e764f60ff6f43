package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/aryannaik/foundation-site/internal/index"
	"github.com/aryannaik/foundation-site/internal/mailer"
	"github.com/aryannaik/foundation-site/internal/roadmap"
	"github.com/aryannaik/foundation-site/internal/search"
)

// Mailer sends contact form submissions.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, msg mailer.Message) error
}

type Deps struct {
	Index     *index.Index
	Roadmap   *roadmap.Service
	Mailer    Mailer
	StaticDir string
	Logger    *log.Logger
}

// New builds the site's HTTP handler with all routes and middleware.
func New(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = log.StandardLogger()
	}
	if d.Index == nil {
		d.Index = index.New(nil)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(requestLogger(d.Logger))

	h := NewHandlers(search.NewSearcher(d.Index), d.Index, d.Roadmap, d.Mailer, d.Logger)
	Register(e, h)

	if d.StaticDir != "" {
		e.Static("/", d.StaticDir)
	}
	return e
}

// Register wires the API routes onto e.
func Register(e *echo.Echo, h *Handlers) {
	e.GET("/api/search", h.HandleSearch)
	e.GET("/api/search/index", h.HandleIndex)
	e.GET("/api/roadmap", h.HandleRoadmap)
	e.POST("/api/contact", h.HandleContact)
	e.GET("/healthz", h.HandleHealth)
}

func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			entry := logger.WithFields(log.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     res.Status,
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"elapsed_ms": float64(time.Since(start)) / float64(time.Millisecond),
			})
			if res.Status >= http.StatusInternalServerError {
				entry.Warn("http.request")
			} else {
				entry.Debug("http.request")
			}
			return nil
		}
	}
}

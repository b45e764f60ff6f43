package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/aryannaik/foundation-site/internal/index"
	"github.com/aryannaik/foundation-site/internal/mailer"
	"github.com/aryannaik/foundation-site/internal/roadmap"
	"github.com/aryannaik/foundation-site/internal/search"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	maxContactMessage  = 5000
)

type Handlers struct {
	searcher *search.Searcher
	index    *index.Index
	roadmap  *roadmap.Service
	mailer   Mailer
	logger   *log.Logger
}

func NewHandlers(searcher *search.Searcher, idx *index.Index, rm *roadmap.Service, m Mailer, logger *log.Logger) *Handlers {
	return &Handlers{
		searcher: searcher,
		index:    idx,
		roadmap:  rm,
		mailer:   m,
		logger:   logger,
	}
}

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
}

func (h *Handlers) HandleSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing query parameter 'q'"})
	}

	limit := defaultSearchLimit
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxSearchLimit)
		}
	}

	results := h.searcher.Search(query, limit)
	return c.JSON(http.StatusOK, searchResponse{Query: query, Results: results, Total: len(results)})
}

// HandleIndex returns every entry; the client-side palette filters locally.
func (h *Handlers) HandleIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, h.index)
}

func (h *Handlers) HandleRoadmap(c echo.Context) error {
	if h.roadmap == nil || !h.roadmap.Configured() {
		var missing []string
		if h.roadmap != nil {
			missing = h.roadmap.Missing()
		}
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "roadmap is not configured", Missing: missing})
	}

	board, err := h.roadmap.Board(c.Request().Context())
	if err != nil {
		h.logger.WithError(err).Error("roadmap.fetch.failed")
		if errors.Is(err, roadmap.ErrNotConfigured) {
			return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "roadmap is not configured", Missing: h.roadmap.Missing()})
		}
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "roadmap data unavailable"})
	}
	return c.JSON(http.StatusOK, board)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r contactRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "name is required"
	case strings.TrimSpace(r.Email) == "":
		return "email is required"
	case strings.TrimSpace(r.Message) == "":
		return "message is required"
	case utf8.RuneCountInString(r.Message) > maxContactMessage:
		return "message is too long"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "email is invalid"
	}
	return ""
}

func (h *Handlers) HandleContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
	}
	if h.mailer == nil || !h.mailer.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "contact form is not configured"})
	}

	name := strings.TrimSpace(req.Name)
	err := h.mailer.Send(c.Request().Context(), mailer.Message{
		Subject: "Website contact from " + name,
		ReplyTo: strings.TrimSpace(req.Email),
		Body:    "From: " + name + " <" + strings.TrimSpace(req.Email) + ">\n\n" + req.Message,
	})
	if err != nil {
		h.logger.WithError(err).Error("contact.send.failed")
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "could not send message"})
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handlers) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"entries": h.index.Len(),
		"roadmap": h.roadmap != nil && h.roadmap.Configured(),
	})
}

package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"esade-news/pkg/models"
	"esade-news/pkg/routes"
	"esade-news/pkg/services"

	"github.com/gin-gonic/gin"
)

const errorTemplate = "error.html"

type ArticleHandler struct {
	table *routes.Table
	log   *slog.Logger
}

func NewArticleHandler(table *routes.Table, log *slog.Logger) *ArticleHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ArticleHandler{table: table, log: log}
}

// Serve selects the route for the request path, runs its resolver once and
// renders the route template, or the view as JSON when the client asks for it.
func (h *ArticleHandler) Serve(c *gin.Context) {
	path := c.Request.URL.Path
	route, params, ok := h.table.Match(path)
	if !ok {
		h.fail(c, http.StatusNotFound, "Page not found")
		return
	}

	view := &models.ContentView{}
	if route.Resolve != nil {
		resolved, err := route.Resolve(c.Request.Context(), path, params)
		if err != nil {
			status := statusFor(err)
			h.log.Warn("article resolve failed", "path", path, "controller", route.Controller, "status", status, "error", err)
			h.fail(c, status, messageFor(status))
			return
		}
		view = resolved
	}

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, view)
	default:
		c.HTML(http.StatusOK, route.Template, gin.H{
			"View":       view,
			"Body":       template.HTML(view.Body),
			"Controller": route.Controller,
		})
	}
}

func (h *ArticleHandler) fail(c *gin.Context, status int, message string) {
	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(status, gin.H{"error": message})
	default:
		c.HTML(status, errorTemplate, gin.H{
			"Status":     status,
			"StatusText": http.StatusText(status),
			"Message":    message,
		})
	}
}

func statusFor(err error) int {
	var ue *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrInvalidPath):
		return http.StatusNotFound
	case errors.As(err, &ue):
		if ue.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.Is(err, services.ErrMalformedContent):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Article not found"
	case http.StatusBadGateway:
		return "The content backend returned an unusable response"
	case http.StatusGatewayTimeout:
		return "The content backend did not answer in time"
	default:
		return "Failed to load article"
	}
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"querytool/helper"
	"querytool/internal/model"
	"querytool/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	executor     service.QueryExecutor
	introspector service.SchemaIntrospector
	logger       *slog.Logger
}

func New(executor service.QueryExecutor, introspector service.SchemaIntrospector, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{executor: executor, introspector: introspector, logger: logger}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/ping", Ping)

	api := r.Group("/api")
	api.POST("/query", h.QueryHandler)
	api.GET("/schema", h.SchemaHandler)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// statusFor maps an error to the HTTP status of its envelope. Everything but
// the dangerous-operation filter is a 400.
func statusFor(err error) int {
	if errors.Is(err, service.ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

func (h *Handler) fail(c *gin.Context, err error) {
	msg := err.Error()
	status := statusFor(err)

	h.logger.Info("request failed",
		slog.String("path", c.FullPath()),
		slog.Int("status", status),
		slog.String("error", msg))

	c.JSON(status, model.ErrorResponse{
		Error:   msg,
		Success: false,
		Hint:    helper.ErrorHint(msg),
	})
}

package handler

import (
	"context"
	"net/http"

	"querytool/internal/model"
	"querytool/internal/service"

	"github.com/gin-gonic/gin"
)

// QueryHandler runs the posted SQL. The statement is not cancelled when the
// client goes away.
func (h *Handler) QueryHandler(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, service.ErrValidation)
		return
	}

	result, err := h.executor.Execute(context.WithoutCancel(c.Request.Context()), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

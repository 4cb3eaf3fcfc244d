package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SchemaHandler(c *gin.Context) {
	result, err := h.introspector.ListSchema(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

package response

import (
	"errors"
	"net/http"

	"cokilo-admin/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success envelope: every payload is wrapped
// under a "data" key, matching what the admin front ends consume.
type Envelope struct {
	Data interface{} `json:"data"`
}

// ErrorBody is the standard error envelope. Clients display Error verbatim.
type ErrorBody struct {
	Error string `json:"error"`
}

// OK sends a 200 response with data wrapped in the envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Data: data})
}

// Created sends a 201 response with data wrapped in the envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Data: data})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps its HTTP status and message, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorBody{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Internal server error"})
}

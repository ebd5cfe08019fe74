package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/pension-scheme-calculator/dto"
)

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.AbortWithStatusJSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

// sendBindError reports a body that could not be decoded into the request type.
func sendBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		sendError(c, http.StatusRequestEntityTooLarge, dto.ErrorCodeInvalidRequest, "Request body too large", err)
		return
	}
	sendError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Invalid request body", err)
}

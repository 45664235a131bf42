package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internfinder/internfinder/internal/app/models/dto"
)

// BindJSON binds the request body into obj and writes the standard validation
// error response when binding fails. Returns false when the request is bad.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

package middleware

import (
	"careercraft_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// OperationMiddleware annotates the request with the operation kind the
// route maps to, so logging and limiting see the declared cost center
// before the handler runs.
func OperationMiddleware(kind models.OperationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("operationKind", string(kind))
		c.Next()
	}
}

// OperationFromParam annotates the request with the operation kind named
// by a path parameter, for routes where the kind is dynamic.
func OperationFromParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := models.OperationKind(c.Param(param))
		if kind.Valid() {
			c.Set("operationKind", string(kind))
		}
		c.Next()
	}
}

// GetOperationKind returns the annotated operation kind, or "".
func GetOperationKind(c *gin.Context) models.OperationKind {
	val, exists := c.Get("operationKind")
	if !exists {
		return ""
	}
	kind, ok := val.(string)
	if !ok {
		return ""
	}
	return models.OperationKind(kind)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/petrescuehub/rescuehub-api/internal/middleware"
	"github.com/petrescuehub/rescuehub-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func optionalUserID(c *gin.Context) *int64 {
	claims := claimsFromContext(c)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}

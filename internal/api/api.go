// Package api exposes the recipe catalog over HTTP.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/internal/service"
)

// RegisterRoutes mounts every catalog endpoint under the given group.
// writeLimit may be nil when rate limiting is disabled.
func RegisterRoutes(group *gin.RouterGroup, recipeService service.IRecipeService, writeLimit gin.HandlerFunc, log *zap.Logger) {
	NewRecipeHandler(recipeService, writeLimit).RegisterRoutes(group)
	NewHealthHandler(recipeService, log).RegisterRoutes(group)
}

package controller

import (
	"podium/auth"
	"podium/service"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore persistence.CacheStore) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupRaceController(db, cacheStore)...)
	routes = append(routes, setupVoteController(db)...)
	routes = append(routes, setupAdminController(db)...)
	routes = append(routes, setupGroupController(db)...)
	routes = append(routes, setupUserController(db)...)
	routes = append(routes, setupDriverController(cacheStore)...)
	api := r.Group("/api")
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware())
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		api.Handle(route.Method, route.Path, handlerfuncs...)
	}
}

// AuthMiddleware verifies the bearer token and stores its claims on the
// context. Admin checks happen in the service layer against the configured
// allow-list, not here.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := service.ClaimsFromAuthHeader(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}

func getClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

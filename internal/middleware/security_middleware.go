package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jewelry-pos/internal/auth"
	"jewelry-pos/internal/models"
	"jewelry-pos/internal/tenant"
)

const claimsKey = "claims"

// AuthMiddleware checks if the user has a valid JWT token
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Format: "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "Authorization header is required")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abort(c, http.StatusUnauthorized, "unauthorized", "Authorization header must start with Bearer")
			return
		}

		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}

		// handlers read identity and shop scope from here
		c.Set(claimsKey, claims)
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "forbidden", "You do not have permission to access this resource")
	}
}

// Claims returns the authenticated claims, or nil outside AuthMiddleware.
func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// Scope is the tenant filter of the caller. Super users see every shop
// but keep their own shop for the rows they create.
func Scope(c *gin.Context) tenant.Scope {
	claims := Claims(c)
	if claims == nil {
		return tenant.Shop(0)
	}
	return ScopeFor(claims)
}

func ScopeFor(claims *auth.Claims) tenant.Scope {
	s := tenant.Shop(claims.ShopID)
	s.All = claims.Role == models.RoleSuperUser
	return s
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": msg})
}

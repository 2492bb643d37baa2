package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culprog/backend/internal/auth"
	"github.com/culprog/backend/internal/models"
)

const claimsKey = "session_claims"

// Session authenticates the request from the session cookie. Missing or
// invalid sessions get a uniform 401, which the front end treats as a
// redirect to login.
func Session(sessions auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(auth.SessionCookie)
		if err != nil || raw == "" {
			abortUnauthorized(c)
			return
		}
		claims, err := sessions.Parse(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole guards a route group to one role, on top of Session.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := SessionClaims(c)
		if !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role",
				},
			})
			return
		}
		c.Next()
	}
}

func SessionClaims(c *gin.Context) (auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Sign in required",
		},
	})
}

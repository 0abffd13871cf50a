package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type PrincipalKind string

const (
	PrincipalStaff  PrincipalKind = "staff"
	PrincipalClient PrincipalKind = "client"
)

// Principal is the tagged identity of the caller. Staff identities come from
// a bearer JWT, client identities from the session cookie.
type Principal struct {
	Kind  PrincipalKind
	ID    string
	Email string
}

const (
	principalKey      = "principal"
	SessionCookieName = "client_session"
	SessionTTL        = 7 * 24 * time.Hour
)

func SessionKey(token string) string {
	return "client_session:" + token
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := val.(Principal)
	return p, ok
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func staffPrincipal(c *gin.Context, jwtUtil *JWTUtil) (Principal, bool) {
	token := bearerToken(c)
	if token == "" {
		return Principal{}, false
	}
	claims, err := jwtUtil.ValidateToken(token)
	if err != nil {
		return Principal{}, false
	}
	return Principal{Kind: PrincipalStaff, ID: claims.UserID, Email: claims.Email}, true
}

func clientPrincipal(c *gin.Context, redis *RedisClient) (Principal, bool) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return Principal{}, false
	}
	var clientID string
	if err := redis.Get(c.Request.Context(), SessionKey(token), &clientID); err != nil {
		return Principal{}, false
	}
	return Principal{Kind: PrincipalClient, ID: clientID}, true
}

// StaffAuthMiddleware guards staff-only routes with the service JWT.
func StaffAuthMiddleware(jwtUtil *JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := staffPrincipal(c, jwtUtil)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		SetPrincipal(c, p)
		c.Next()
	}
}

// ClientSessionMiddleware guards portal routes with the session cookie.
func ClientSessionMiddleware(redis *RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := clientPrincipal(c, redis)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		SetPrincipal(c, p)
		c.Next()
	}
}

// EitherAuthMiddleware accepts a staff token or a client session. The ticket
// message endpoints are the only routes that take both.
func EitherAuthMiddleware(jwtUtil *JWTUtil, redis *RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := staffPrincipal(c, jwtUtil); ok {
			SetPrincipal(c, p)
			c.Next()
			return
		}
		if p, ok := clientPrincipal(c, redis); ok {
			SetPrincipal(c, p)
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	sessionCookie = "storefront_session"
	sessionTTL    = 30 * 24 * time.Hour

	// ContextSessionKey is where the resolved session id lives in the gin
	// context.
	ContextSessionKey = "sessionId"
)

// Session resolves the browser session. A valid signed token (cookie or
// Authorization header) is reused; anything else gets a fresh session with a
// token issued on the response. Every request ends up with a session id.
func Session(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID, ok := sessionFromRequest(c, secret); ok {
			c.Set(ContextSessionKey, sessionID)
			c.Next()
			return
		}

		sessionID := primitive.NewObjectID().Hex()
		token, err := issueToken(secret, sessionID)
		if err != nil {
			log.Println("[SESSION] [ERROR] token signing failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
		c.Set(ContextSessionKey, sessionID)
		c.Next()
	}
}

func sessionFromRequest(c *gin.Context, secret string) (string, bool) {
	raw := ""
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		raw = cookie
	} else if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			raw = parts[1]
		}
	}
	if raw == "" {
		return "", false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		log.Println("[SESSION] [WARN] token validation failed:", err)
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sessionID, ok := claims["sessionId"].(string)
	if !ok || strings.TrimSpace(sessionID) == "" {
		return "", false
	}
	return sessionID, true
}

func issueToken(secret, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sessionId": sessionID,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SessionID reads the session id injected by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionKey)
}

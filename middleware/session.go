package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/models"
	"storefront/utils"
)

const (
	SessionHeader = "X-Cart-Session"
	sessionKey    = "cart_session_id"
)

// CartSessionMiddleware resolves the guest cart session from SessionHeader.
// Requests without a token get a fresh session; the token is always echoed
// back so the client can keep using it. A token that fails validation is
// rejected rather than silently replaced.
func CartSessionMiddleware(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(SessionHeader))
		raw = strings.TrimPrefix(raw, "Bearer ")

		var sessionID string
		if raw != "" {
			claims, err := utils.ValidateSessionToken(secret, raw)
			if err != nil {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Success: false,
					Message: "Invalid or expired cart session",
					Error:   err.Error(),
				})
				c.Abort()
				return
			}
			sessionID = claims.SessionID
		} else {
			sessionID = uuid.NewString()
		}

		token, err := utils.GenerateSessionToken(secret, sessionID, ttl)
		if err != nil {
			log.Printf("Failed to issue cart session token: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Failed to issue cart session",
			})
			c.Abort()
			return
		}

		c.Header(SessionHeader, token)
		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
	"github.com/podiumlink/podiumlink/internal/core/usecase"
)

const sessionContextKey = "session"

// sessionMiddleware resolves the session token into a model.Session and puts
// it on the gin context. Tokens travel in the X-Session-Token header, with a
// session_token cookie as browser fallback.
//
// Programmer sessions carry the account status from signup time, but approval
// happens out-of-band in another process, so the status is refreshed from the
// repository on every request.
func sessionMiddleware(sessions ports.IdentityStore, profiles *usecase.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Session-Token")
		if token == "" {
			if cookie, err := c.Cookie("session_token"); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		raw, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		session, ok := raw.(model.Session)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if session.Role == model.RoleProgrammer {
			programmer, err := profiles.GetProgrammer(c.Request.Context(), session.UserID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			if programmer.Status != session.Status {
				session.Status = programmer.Status
				sessions.Set(token, session)
			}
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// currentSession returns the session set by sessionMiddleware. Only valid on
// routes behind the middleware.
func currentSession(c *gin.Context) model.Session {
	return c.MustGet(sessionContextKey).(model.Session)
}

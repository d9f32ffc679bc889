package shell

import (
	"errors"
	"net/http"

	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/session"

	"github.com/gin-gonic/gin"
)

const workspaceKey = "workspace"

// withWorkspace loads the caller's workspace, runs the page handler, then
// saves it back. Requests for one session run one at a time so a redirected
// GET always sees what the preceding POST stored.
func (s *Server) withWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(s.cfg.Server.CookieName)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
		}
		ttl := s.cfg.Server.SessionTTLDuration()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(s.cfg.Server.CookieName, id, int(ttl.Seconds()), "/", "", false, true)

		unlock := s.locks.Lock(id)
		defer unlock()

		ctx := c.Request.Context()
		ws := NewWorkspace()
		data, err := s.store.Load(ctx, id)
		switch {
		case err == nil:
			if decoded, decErr := decodeWorkspace(data); decErr != nil {
				s.logger.Warn("Discarding unreadable workspace", map[string]interface{}{"error": decErr})
			} else {
				ws = decoded
			}
		case errors.Is(err, session.ErrNotFound):
		default:
			s.logger.Error("Failed to load workspace", apperrors.LogFields(err))
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		c.Set(workspaceKey, ws)
		c.Next()

		encoded, err := ws.encode()
		if err != nil {
			s.logger.Error("Failed to encode workspace", map[string]interface{}{"error": err})
			return
		}
		if err := s.store.Save(ctx, id, encoded); err != nil {
			s.logger.Error("Failed to save workspace", apperrors.LogFields(err))
		}
	}
}

func workspaceFrom(c *gin.Context) *Workspace {
	return c.MustGet(workspaceKey).(*Workspace)
}

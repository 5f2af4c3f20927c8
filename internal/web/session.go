package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "storefront_session"
	sessionMaxAge = 30 * 24 * 60 * 60
	ownerKey      = "owner_id"
)

// session gives every visitor a stable owner ID, the key of their cart slot.
func session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}

		c.Set(ownerKey, id)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}

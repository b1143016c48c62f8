// Package flash implements one-shot notifications carried across a redirect.
// Messages are queued in a cookie and consumed exactly once by the next
// rendered page.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie that carries pending flash messages.
const CookieName = "blog_flash"

// Flash message categories.
const (
	CategoryInfo    = "info"
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

// Flash is a single user-facing notification.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Add queues a flash message for the next rendered page.
// Pending messages already queued on this request are preserved.
func Add(c *gin.Context, category, message string) {
	flashes := append(pending(c), Flash{Category: category, Message: message})
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, base64.URLEncoding.EncodeToString(data), 300, "/", "", false, true)
}

// Pop returns all queued flash messages and clears the queue.
func Pop(c *gin.Context) []Flash {
	flashes := pending(c)
	if len(flashes) > 0 {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, "", -1, "/", "", false, true)
	}
	return flashes
}

// pending decodes the flash cookie; a missing or malformed cookie yields nil.
func pending(c *gin.Context) []Flash {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return nil
	}
	data, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

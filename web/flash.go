package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/gin-gonic/gin"
)

const flashCookieName = "flash"

// Flash levels map onto Bootstrap alert classes.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
)

// Flash is a one-shot notice shown on the next page load.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func setFlash(c *gin.Context, level, message string) {
	raw, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		logger.GetLogger().Errorw("Failed to encode flash", "error", err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", false, true)
}

// popFlash reads and clears the flash cookie. Malformed cookies are dropped.
func popFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookieName)
	if err != nil || value == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	switch f.Level {
	case FlashSuccess, FlashDanger, FlashWarning:
	default:
		f.Level = FlashDanger
	}
	return &f
}

package web

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nivar/journey/internal/storage"
)

const (
	visitorCookie    = "journey_vid"
	visitorCookieAge = 365 * 24 * 3600
)

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP returns a salted hash of ip, stable for the lifetime of the
// process. Only 16 hex characters are kept.
func (s *Server) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// untracked reports whether requests to path are never recorded.
func untracked(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin", "/api/", "/favicon", "/privacy", "/healthz", "/resume/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// visitorTracking records page requests with a hashed client address. It
// honours Do Not Track.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if untracked(path) || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := storage.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: s.now(),
		}
		s.background(5*time.Second, func(ctx context.Context) {
			if err := s.store.RecordVisit(ctx, v); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}

// visitorID returns the visitor id cookie, issuing a new one when absent
// or malformed.
func (s *Server) visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(visitorCookie, id, visitorCookieAge, "/", "", c.Request.TLS != nil, true)
	return id
}

// privacy renders the privacy policy.
func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":         "Privacy Policy",
		"owner":         s.content.Site.Owner,
		"retentionDays": int(s.cfg.Retention.Hours() / 24),
	})
}

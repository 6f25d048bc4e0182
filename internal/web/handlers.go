package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nivar/journey/internal/a11y"
	"github.com/nivar/journey/internal/analytics"
	"github.com/nivar/journey/internal/mail"
	"github.com/nivar/journey/internal/storage"
)

// maxEventBatch bounds the events accepted per ingest request.
const maxEventBatch = 25

type a11yToggle struct {
	Flag  a11y.Flag
	Label string
	On    bool
}

// loadA11y reads the visitor's accessibility settings. Malformed records
// fall back to defaults.
func (s *Server) loadA11y(ctx context.Context, visitorID string) a11y.Settings {
	settings, err := a11y.Load(s.store.Preferences(ctx, visitorID))
	if err != nil {
		log.Printf("Error loading accessibility settings: %v", err)
	}
	return settings
}

// index renders the page with the head of the home section and the
// visitor's accessibility classes already applied.
func (s *Server) index(c *gin.Context) {
	settings := s.loadA11y(c.Request.Context(), s.visitorID(c))
	toggles := make([]a11yToggle, 0, len(a11y.Flags))
	for _, f := range a11y.Flags {
		toggles = append(toggles, a11yToggle{Flag: f, Label: f.Label(), On: settings.Get(f)})
	}
	seed, err := settings.Encode()
	if err != nil {
		log.Printf("Error encoding accessibility settings: %v", err)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"meta":       s.content.SEOCatalog().For(string(s.content.Home())),
		"site":       s.content.Site,
		"sections":   s.content.Sections,
		"content":    s.content,
		"bodyClass":  strings.Join(settings.BodyClasses(), " "),
		"a11yFlags":  toggles,
		"a11ySeed":   seed,
		"sampling":   s.sampling.String(),
		"gtagID":     s.cfg.GtagID,
		"devMonitor": s.cfg.DevMonitor,
		"year":       s.now().Year(),
	})
}

// contact stores a contact form submission and mails it. The visitor sees
// success once the message is stored; delivery failures are logged and
// visible in the admin messages view.
func (s *Server) contact(c *gin.Context) {
	msg := mail.Message{
		Name:    strings.TrimSpace(c.PostForm("fullName")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if msg.Email == "" || msg.Message == "" || !strings.Contains(msg.Email, "@") {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please provide a valid email address and a message.",
		})
		return
	}

	id, err := s.store.SaveContact(c.Request.Context(), storage.ContactMessage{
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
	})
	if err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	if s.mailer != nil {
		s.background(30*time.Second, func(ctx context.Context) {
			if err := s.mailer.Send(ctx, msg); err != nil {
				log.Printf("Error sending contact %d: %v", id, err)
				return
			}
			if err := s.store.MarkDelivered(ctx, id); err != nil {
				log.Printf("Error marking contact %d delivered: %v", id, err)
			}
		})
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

// resumeFragment renders one resume tab for HTMX.
func (s *Server) resumeFragment(c *gin.Context) {
	kind := c.Param("kind")
	entries, ok := s.content.Resume.Entries(kind)
	if !ok {
		c.String(http.StatusNotFound, "unknown resume section")
		return
	}
	c.HTML(http.StatusOK, "resume-entries.html", gin.H{
		"kind":    kind,
		"entries": entries,
	})
}

type eventBatch struct {
	Events []analytics.Event `json:"events"`
}

// ingestEvents accepts analytics events from the page. Requests carrying
// DNT are acknowledged without storing anything.
func (s *Server) ingestEvents(c *gin.Context) {
	var batch eventBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if len(batch.Events) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no events"})
		return
	}
	if len(batch.Events) > maxEventBatch {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("at most %d events per request", maxEventBatch)})
		return
	}
	for i, e := range batch.Events {
		if err := analytics.Validate(e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("event %d: %v", i, err)})
			return
		}
	}

	if c.GetHeader("DNT") == "1" {
		c.JSON(http.StatusAccepted, gin.H{"accepted": 0})
		return
	}

	if _, err := s.store.RecordEvents(c.Request.Context(), s.visitorID(c), batch.Events); err != nil {
		log.Printf("Error recording %d events: %v", len(batch.Events), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record events"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": len(batch.Events)})
}

type a11yResponse struct {
	Settings a11y.Settings `json:"settings"`
	Classes  []string      `json:"classes"`
}

func (s *Server) getA11y(c *gin.Context) {
	settings := s.loadA11y(c.Request.Context(), s.visitorID(c))
	c.JSON(http.StatusOK, a11yResponse{Settings: settings, Classes: nonNil(settings.BodyClasses())})
}

func (s *Server) putA11y(c *gin.Context) {
	var settings a11y.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": a11y.ErrMalformed.Error()})
		return
	}
	if err := a11y.Save(s.store.Preferences(c.Request.Context(), s.visitorID(c)), settings); err != nil {
		log.Printf("Error saving accessibility settings: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNotConfigured) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": "failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, a11yResponse{Settings: settings, Classes: nonNil(settings.BodyClasses())})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

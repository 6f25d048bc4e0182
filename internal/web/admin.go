package web

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivar/journey/internal/analytics"
)

const adminCookie = "admin_token"

// adminCredentials returns the configured credentials. Outside debug mode
// missing credentials disable login.
func (s *Server) adminCredentials() (user, pass string, ok bool) {
	user, pass = s.cfg.Admin.Username, s.cfg.Admin.Password
	if gin.Mode() == gin.DebugMode {
		if user == "" {
			user = "admin"
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
		if pass == "" {
			pass = "admin123"
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return user, pass, user != "" && pass != ""
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equal(token, s.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		user, pass, ok := s.adminCredentials()
		// Both comparisons always run.
		userOK := equal(c.PostForm("username"), user)
		passOK := equal(c.PostForm("password"), pass)
		if !ok || !userOK || !passOK {
			log.Printf("Failed admin login attempt from %s", s.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", c.Request.TLS != nil, true)
		log.Printf("Admin login successful from %s", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		log.Printf("Admin logout from %s", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(s.adminAuth())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/visitors", func(c *gin.Context) {
		visits, err := s.store.RecentVisits(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visits})
	})

	g.GET("/events", func(c *gin.Context) {
		name := c.Query("name")
		if name != "" && !analytics.KnownEvent(name) {
			c.HTML(http.StatusBadRequest, "admin-error.html", gin.H{"error": "Unknown event name"})
			return
		}
		events, err := s.store.RecentEvents(c.Request.Context(), name, 200)
		if err != nil {
			log.Printf("Error loading events: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load events"})
			return
		}
		c.HTML(http.StatusOK, "admin-events.html", gin.H{
			"name":   name,
			"names":  analytics.EventNames,
			"events": events,
		})
	})

	g.GET("/contacts", func(c *gin.Context) {
		msgs, err := s.store.Contacts(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading contact messages: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-contacts.html", gin.H{"contacts": msgs})
	})

	g.POST("/privacy/cleanup", func(c *gin.Context) {
		s.cleanup(c.Request.Context())
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=journey-stats.json")
		log.Printf("Admin stats exported by %s", s.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

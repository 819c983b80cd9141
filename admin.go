// admin.go - privacy-conscious admin pages
package main

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
)

const adminCookie = "admin_token"

type adminAuth struct {
	token    string
	username string
	password string
}

// newAdminAuth falls back to development credentials only in debug mode.
// Without a password in release mode, nobody can log in.
func newAdminAuth(cfg Config, log *zap.Logger) *adminAuth {
	a := &adminAuth{
		token:    randomToken(),
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
	}
	if a.username == "" {
		a.username = "admin"
	}
	if a.password == "" && gin.Mode() == gin.DebugMode {
		a.password = "admin123"
		log.Warn("using default admin password, set ADMIN_PASSWORD")
	}
	if gin.Mode() == gin.DebugMode {
		log.Debug("admin token (dev only)", zap.String("token", a.token))
	}
	return a
}

func (a *adminAuth) check(username, password string) bool {
	if a.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminStats is shown on the dashboard. Visitors is nil when tracking is off.
type AdminStats struct {
	Visitors        *VisitorStats  `json:"visitors,omitempty"`
	ContactSessions map[string]int `json:"contact_sessions"`
}

func (s *server) adminStats() (*AdminStats, error) {
	counts, err := s.sessions.CountByState()
	if err != nil {
		return nil, err
	}
	stats := &AdminStats{ContactSessions: make(map[string]int, 4)}
	for _, st := range []contact.State{contact.StateIdle, contact.StateSubmitting, contact.StateSucceeded, contact.StateFailed} {
		stats.ContactSessions[st.String()] = counts[st]
	}

	if s.visitors != nil {
		stats.Visitors, err = s.visitors.stats(time.Now(), 50)
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	log := s.log.Named("admin")

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":    "Privacy Policy",
			"tracking": s.visitors != nil,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if s.admin.check(c.PostForm("username"), c.PostForm("password")) {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", s.cfg.SecureCookies, true)
			log.Info("admin login")
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Warn("failed admin login attempt")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", s.cfg.SecureCookies, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.adminStats()
		if err != nil {
			log.Error("loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.adminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.adminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.visitors == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Visitor tracking is disabled", "removed": 0})
			return
		}
		n, err := s.visitors.cleanup(time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup done", "removed": n})
	})

	adminGroup.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
}

package main

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
	"github.com/AnjaliSharma2212/portfolio-app/internal/middleware"
	"github.com/AnjaliSharma2212/portfolio-app/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// server holds everything the handlers need. There is no package-level state.
type server struct {
	cfg      Config
	content  Content
	flow     *contact.Flow
	sessions *session.Store
	visitors *visitorLog // nil unless DATABASE_PATH is set
	registry *prometheus.Registry
	admin    *adminAuth
	log      *zap.Logger
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"join": strings.Join,
		"year": func() int { return time.Now().Year() },
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

func (s *server) router() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		gin.Recovery(),
		middleware.Logger(s.log.Named("http")),
		middleware.NewMetrics(s.registry).Handler(),
		middleware.HostWhitelist(s.cfg.AllowedHosts),
	)
	if s.visitors != nil {
		r.Use(s.visitors.middleware())
	}

	r.Static("/static", "./static")
	r.Static("/images", "./images")

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/", s.handleIndex)
	r.GET("/contact-form", s.handleContactForm)

	limit := middleware.RateLimit(middleware.NewLimiter(s.cfg.ContactRate, s.cfg.ContactBurst, 10*time.Minute))
	r.POST("/contact", limit, s.handleContactSubmit)
	r.POST("/contact/edit", s.handleContactEdit)
	r.POST("/contact/dismiss", s.handleContactDismiss)

	api := r.Group("/api")
	api.GET("/contact", s.handleContactStateJSON)
	api.POST("/contact", limit, s.handleContactSubmitJSON)
	api.POST("/contact/dismiss", s.handleContactDismissJSON)

	s.setupAdminRoutes(r)
	return r, nil
}

func (s *server) handleIndex(c *gin.Context) {
	sess, err := s.flow.Session(s.sessionID(c))
	if err != nil {
		s.log.Error("loading contact session", zap.Error(err))
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"content": s.content,
		"contact": s.contactView(sess),
	})
}

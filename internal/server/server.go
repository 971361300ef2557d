// Package server wires the portfolio site: gin routes, the template
// funcs that apply the display transforms, the contact form, and the
// admin area.
package server

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/avasquez/folio/internal/config"
	"github.com/avasquez/folio/internal/icons"
	"github.com/avasquez/folio/internal/mail"
	"github.com/avasquez/folio/internal/metrics"
	"github.com/avasquez/folio/internal/project"
	"github.com/avasquez/folio/internal/text"
	"github.com/avasquez/folio/internal/web"
)

// Server renders the portfolio site.
type Server struct {
	cfg      *config.Config
	projects []project.Project
	filters  []string
	store    *metrics.Store
	sender   *mail.Sender

	adminToken string
}

// New builds a Server from a loaded catalog. The admin session token
// is regenerated per process.
func New(cfg *config.Config, projects []project.Project, store *metrics.Store, sender *mail.Sender) (*Server, error) {
	token, err := newAdminToken()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:        cfg,
		projects:   projects,
		filters:    filterLabels(projects),
		store:      store,
		sender:     sender,
		adminToken: token,
	}, nil
}

// filterLabels collects the distinct language tags across the catalog,
// sorted for a stable filter bar.
func filterLabels(projects []project.Project) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, p := range projects {
		for _, lang := range p.Languages {
			if _, ok := seen[lang]; ok {
				continue
			}
			seen[lang] = struct{}{}
			labels = append(labels, lang)
		}
	}
	sort.Strings(labels)
	return labels
}

// funcMap exposes the display transforms to templates.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatTitle":  text.FormatTitle,
		"escapeFilter": text.EscapeFilter,
		"icon":         icons.Glyph,
		"stars": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"since": func(t time.Time) string {
			return humanize.Time(t)
		},
	}
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	tmpl := template.Must(template.New("").Funcs(funcMap()).ParseFS(web.Templates, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))
	// Project screenshots live on disk next to the catalog file.
	r.Static("/images", "./images")

	if s.store != nil {
		r.Use(s.store.Middleware())
	}

	r.GET("/", s.index)
	r.GET("/projects", s.projectList)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.contact)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
	})

	s.setupAdminRoutes(r)

	return r
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"projects": s.projects,
		"filters":  s.filters,
	})
}

// projectList serves the HTMX fragment for the project grid. An
// optional ?filter= label narrows the grid to projects tagged with
// that language; a label the pattern compiler rejects falls back to
// the full grid rather than erroring.
func (s *Server) projectList(c *gin.Context) {
	shown := s.projects

	if label := c.Query("filter"); label != "" {
		re, err := text.FilterPattern(label)
		if err != nil {
			slog.Warn("unusable filter label", "label", label, "error", err)
		} else {
			shown = nil
			for _, p := range s.projects {
				for _, lang := range p.Languages {
					if re.MatchString(lang) {
						shown = append(shown, p)
						break
					}
				}
			}
		}
	}

	c.HTML(http.StatusOK, "projects.html", gin.H{
		"projects": shown,
	})
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
}

func (s *Server) contact(c *gin.Context) {
	name := c.PostForm("fullName")
	email := c.PostForm("email")
	message := c.PostForm("message")

	if err := s.sender.Contact(name, email, message); err != nil {
		slog.Error("contact mail failed", "error", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	slog.Info("contact mail sent", "from", email)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

// ABOUTME: Server-rendered read-only pages with embedded templates
// ABOUTME: Dashboard, customer list and detail, deal pipeline, and recommendations
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/harperreed/salescrm/models"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{"dashboard", "customers", "customer", "deals", "recommendations", "error"}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return "$" + humanize.CommafWithDigits(v, 2)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(models.DateLayout)
		},
		"label": func(s string) string {
			return cases.Title(language.English).String(s)
		},
	}
}

// loadPages parses each page together with the shared layout.
func loadPages() (map[string]*template.Template, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (s *Server) renderPage(c *gin.Context, status int, name string, data gin.H) {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("Template error", zap.String("page", name), zap.Error(err))
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) renderErrorPage(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Page failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	s.renderPage(c, status, "error", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": err.Error(),
	})
}

func (s *Server) dashboardPage(c *gin.Context) {
	d, err := s.analytics.Dashboard(c.Request.Context())
	if err != nil {
		s.renderErrorPage(c, err)
		return
	}
	s.renderPage(c, http.StatusOK, "dashboard", gin.H{"Title": "Dashboard", "Dashboard": d})
}

func (s *Server) customersPage(c *gin.Context) {
	customers, err := s.store.Customers.List(c.Request.Context())
	if err != nil {
		s.renderErrorPage(c, err)
		return
	}
	s.renderPage(c, http.StatusOK, "customers", gin.H{"Title": "Customers", "Customers": customers})
}

func (s *Server) customerPage(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.renderErrorPage(c, models.NewValidationError("invalid customer id %q", c.Param("id")))
		return
	}

	detail, err := s.store.Customers.GetDetail(ctx, id)
	if err != nil {
		s.renderErrorPage(c, err)
		return
	}
	health, err := s.analytics.CustomerHealth(ctx, id)
	if err != nil {
		s.renderErrorPage(c, err)
		return
	}

	s.renderPage(c, http.StatusOK, "customer", gin.H{
		"Title":    detail.Name,
		"Customer": detail,
		"Health":   health,
	})
}

func (s *Server) dealsPage(c *gin.Context) {
	stage := c.Query("stage")
	if stage != "" && !slices.Contains(models.Stages, stage) {
		s.renderErrorPage(c, models.NewValidationError("invalid stage: %s", stage))
		return
	}

	deals, err := s.store.Deals.ListWithCustomer(c.Request.Context())
	if err != nil {
		s.renderErrorPage(c, err)
		return
	}
	if stage != "" {
		deals = slices.DeleteFunc(deals, func(d models.DealWithCustomer) bool { return d.Stage != stage })
	}

	s.renderPage(c, http.StatusOK, "deals", gin.H{
		"Title":  "Deals",
		"Deals":  deals,
		"Stages": models.Stages,
		"Stage":  stage,
	})
}

func (s *Server) recommendationsPage(c *gin.Context) {
	recs, err := s.analytics.DealRecommendations(c.Request.Context())
	if err != nil {
		s.renderErrorPage(c, err)
		return
	}
	s.renderPage(c, http.StatusOK, "recommendations", gin.H{"Title": "Recommendations", "Recommendations": recs})
}

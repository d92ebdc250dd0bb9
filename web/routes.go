// ABOUTME: Route table for the REST API and server-rendered pages
// ABOUTME: Groups entity CRUD, analytics, and AI assist endpoints under /api
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/salescrm/models"
)

func (s *Server) registerRoutes() {
	r := s.engine

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "API is running"})
		})

		customers := resource[models.Customer]{s: s, entity: "Customer", repo: s.store.Customers}
		customers.mount(api.Group("/customers"), s.getCustomerDetail)

		resource[models.Contact]{s: s, entity: "Contact", repo: s.store.Contacts}.mount(api.Group("/contacts"), nil)
		resource[models.Deal]{s: s, entity: "Deal", repo: s.store.Deals}.mount(api.Group("/deals"), nil)
		resource[models.Activity]{s: s, entity: "Activity", repo: s.store.Activities}.mount(api.Group("/activities"), nil)

		stats := api.Group("/analytics")
		{
			stats.GET("/dashboard", s.dashboard)
			stats.GET("/sentiment/:customerId", s.sentiment)
			stats.POST("/extract-insights", s.extractInsights)
			stats.GET("/deal-recommendations", s.dealRecommendations)
			stats.GET("/performance-report", s.performanceReport)
			stats.GET("/customer-health/:customerId", s.customerHealth)
		}

		assist := api.Group("/ai")
		{
			assist.GET("/insights", s.aiInsights)
			assist.GET("/coaching/:customerId", s.aiCoaching)
			assist.POST("/email-template", s.aiEmailTemplate)
			assist.GET("/deal-risk/:dealId", s.aiDealRisk)
			assist.GET("/customer-intelligence/:customerId", s.aiCustomerIntelligence)
		}
	}

	r.GET("/", s.dashboardPage)
	r.GET("/customers", s.customersPage)
	r.GET("/customers/:id", s.customerPage)
	r.GET("/deals", s.dealsPage)
	r.GET("/recommendations", s.recommendationsPage)
}

func (s *Server) getCustomerDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := s.store.Customers.GetDetail(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ABOUTME: Analytics and AI assist REST handlers
// ABOUTME: Thin adapters from HTTP parameters to the analytics service and assistant
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/salescrm/ai"
	"github.com/harperreed/salescrm/analytics"
	"go.uber.org/zap"
)

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.analytics.Dashboard(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) sentiment(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	report, err := s.analytics.Sentiment(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type extractRequest struct {
	Text string `json:"text"`
}

func (s *Server) extractInsights(c *gin.Context) {
	var req extractRequest
	if !bindJSON(c, &req) {
		return
	}
	insights, err := analytics.ExtractInsights(req.Text)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

func (s *Server) dealRecommendations(c *gin.Context) {
	recs, err := s.analytics.DealRecommendations(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) performanceReport(c *gin.Context) {
	report, err := s.analytics.PerformanceReport(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) customerHealth(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	health, err := s.analytics.CustomerHealth(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, health)
}

func (s *Server) aiInsights(c *gin.Context) {
	ctx := c.Request.Context()
	d, err := s.analytics.Dashboard(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var insights interface{} = []interface{}{}
	reply, err := s.assistant.Insights(ctx, d)
	switch {
	case errors.Is(err, ai.ErrModel):
		s.logger.Warn("AI request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
	case err != nil:
		s.respondError(c, err)
		return
	default:
		insights = reply
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights, "analytics": d})
}

func (s *Server) aiCoaching(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	reply, err := s.assistant.Coaching(c.Request.Context(), id)
	s.respondModel(c, reply, err, nil)
}

type emailRequest struct {
	CustomerID   int64  `json:"customerId"`
	DealID       int64  `json:"dealId"`
	TemplateType string `json:"templateType"`
}

func (s *Server) aiEmailTemplate(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := s.assistant.EmailTemplate(c.Request.Context(), req.CustomerID, req.DealID, req.TemplateType)
	s.respondModel(c, reply, err, nil)
}

func (s *Server) aiDealRisk(c *gin.Context) {
	id, ok := pathID(c, "dealId")
	if !ok {
		return
	}
	reply, err := s.assistant.DealRisk(c.Request.Context(), id)
	s.respondModel(c, reply, err, nil)
}

func (s *Server) aiCustomerIntelligence(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	reply, err := s.assistant.CustomerIntelligence(c.Request.Context(), id)
	s.respondModel(c, reply, err, nil)
}

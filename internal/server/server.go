package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerpulse/sellerpulse/internal/analyze"
	"github.com/sellerpulse/sellerpulse/internal/assistant"
	"github.com/sellerpulse/sellerpulse/internal/report"
)

type Server struct {
	router    *gin.Engine
	store     *Store
	assistant assistant.Assistant
	now       func() time.Time
}

// NewServer creates a server around the given assistant strategy.
func NewServer(asst assistant.Assistant) *Server {
	router := gin.Default()

	server := &Server{
		router:    router,
		store:     NewStore(assistant.Greeting),
		assistant: asst,
		now:       time.Now,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.POST("/reports/orders", s.uploadOrders)
		api.POST("/reports/inventory", s.uploadInventory)
		api.GET("/dashboard", s.dashboard)
		api.GET("/chat/history", s.chatHistory)
		api.GET("/chat/suggestions", s.chatSuggestions)
		api.POST("/chat", s.chat)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "sellerpulse",
		"version": "0.1.0",
	})
}

// uploadOrders ingests a raw TSV order report from the request body and
// replaces the current order set.
func (s *Server) uploadOrders(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read report body"})
		return
	}

	orders := report.OrdersFromRecords(report.ParseReport(string(body)))
	s.store.SetOrders(orders)

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"orders": len(orders),
	})
}

// uploadInventory ingests a raw TSV inventory report and replaces the
// current inventory set.
func (s *Server) uploadInventory(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read report body"})
		return
	}

	items := report.ItemsFromRecords(report.ParseReport(string(body)))
	s.store.SetInventory(items)

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"items":  len(items),
	})
}

// dashboard returns the full derived snapshot for the current record sets.
func (s *Server) dashboard(c *gin.Context) {
	orders, inventory := s.store.Snapshot()
	c.JSON(http.StatusOK, analyze.BuildOverview(orders, inventory, s.now()))
}

func (s *Server) chatHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": s.store.History()})
}

func (s *Server) chatSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": assistant.SuggestedQuestions})
}

type chatPayload struct {
	Question string `json:"question" binding:"required"`
}

// chat answers one question. Requests are handled synchronously, one
// completion call in flight per request; assistant failures still produce
// a well-formed transcript entry flagged as an error.
func (s *Server) chat(c *gin.Context) {
	var payload chatPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	s.store.AppendMessage("user", payload.Question, false)

	orders, inventory := s.store.Snapshot()
	answer := s.assistant.Ask(c.Request.Context(), payload.Question, orders, inventory, s.now())

	msg := s.store.AppendMessage("assistant", answer, assistant.IsDegraded(answer))
	c.JSON(http.StatusOK, msg)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

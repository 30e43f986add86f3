package api

import (
	"github.com/gin-gonic/gin"

	"gostoch/adapters/stats/engine"
	"gostoch/adapters/stats/markov"
	"gostoch/domain/stats"
	"gostoch/internal"
	"gostoch/ports"
)

// Server is the HTTP front for the estimation engines. The repository is
// optional: with a nil repo there is no persistence and the report endpoints
// return 404.
type Server struct {
	router   *gin.Engine
	engine   *engine.StatsEngine
	analyzer *markov.Analyzer
	repo     ports.ReportRepository
	logger   *internal.Logger
}

// NewServer wires the engines and routes.
func NewServer(policy stats.Policy, repo ports.ReportRepository, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:   gin.Default(),
		engine:   engine.NewStatsEngine(policy),
		analyzer: markov.NewAnalyzer(policy),
		repo:     repo,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.POST("/analyze/timeseries", s.handleAnalyzeTimeSeries)
		v1.POST("/analyze/batch", s.handleAnalyzeBatch)
		v1.POST("/upload", s.handleUpload)
		v1.GET("/reports", s.handleListReports)
		v1.GET("/reports/:id", s.handleGetReport)
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	s.logger.Info("api server listening on :%s", port)
	return s.router.Run(":" + port)
}

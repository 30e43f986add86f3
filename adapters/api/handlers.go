package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"gostoch/adapters/excel"
	"gostoch/adapters/export"
	"gostoch/adapters/tabular"
	"gostoch/domain/core"
	"gostoch/domain/stats"
	"gostoch/domain/theory"
	apperrors "gostoch/internal/errors"
)

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid(err.Error()))
		return
	}

	report, err := s.runCrossSection(c, &req)
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}
	s.respondReport(c, report)
}

func (s *Server) handleAnalyzeTimeSeries(c *gin.Context) {
	var req TimeSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid(err.Error()))
		return
	}

	report, err := s.runTimeSeries(c, &req)
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}
	s.respondTimeSeriesReport(c, report)
}

// handleAnalyzeBatch runs the cross-sectional and time-series pipelines
// concurrently. The two runs are independent, so a failure in one fails the
// whole batch without waiting on the other.
func (s *Server) handleAnalyzeBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid(err.Error()))
		return
	}
	if req.CrossSection == nil && req.TimeSeries == nil {
		s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid("batch request needs cross_section or time_series"))
		return
	}

	var (
		crossReport *stats.Report
		timeReport  *stats.TimeSeriesReport
	)
	g, _ := errgroup.WithContext(c.Request.Context())
	if req.CrossSection != nil {
		g.Go(func() error {
			var err error
			crossReport, err = s.runCrossSection(c, req.CrossSection)
			return err
		})
	}
	if req.TimeSeries != nil {
		g.Go(func() error {
			var err error
			timeReport, err = s.runTimeSeries(c, req.TimeSeries)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.respondAnalysisError(c, err)
		return
	}

	resp := BatchResponse{}
	if crossReport != nil {
		resp.CrossSection = crossReport
	}
	if timeReport != nil {
		resp.TimeSeries = timeReport
	}
	c.JSON(http.StatusOK, resp)
}

// handleUpload accepts a CSV or Excel file as multipart form data. The
// "mode" form field selects the pipeline: "cross" (default) or "panel".
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("data")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid("missing data file"))
		return
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, apperrors.Wrap(err, "failed to stage upload"))
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		s.respondError(c, http.StatusInternalServerError, apperrors.Wrap(err, "failed to stage upload"))
		return
	}

	reader := excel.NewDataReader(tmpPath)
	switch c.DefaultPostForm("mode", "cross") {
	case "panel":
		panel, err := reader.ReadPanel()
		if err != nil {
			s.respondAnalysisError(c, err)
			return
		}
		report, err := s.analyzer.Analyze(panel)
		if err != nil {
			s.respondAnalysisError(c, err)
			return
		}
		s.persistTimeSeries(c, report)
		s.respondTimeSeriesReport(c, report)
	case "cross":
		smpl, err := reader.ReadSample(tabular.Options{})
		if err != nil {
			s.respondAnalysisError(c, err)
			return
		}
		report, err := s.engine.Analyze(smpl, nil)
		if err != nil {
			s.respondAnalysisError(c, err)
			return
		}
		s.persistReport(c, report)
		s.respondReport(c, report)
	default:
		s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid("mode must be cross or panel"))
	}
}

func (s *Server) handleListReports(c *gin.Context) {
	if s.repo == nil {
		s.respondError(c, http.StatusNotFound, apperrors.NotFound("report storage is not configured"))
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	summaries, err := s.repo.ListReports(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, apperrors.WithCode(apperrors.CodeDatabaseError, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

func (s *Server) handleGetReport(c *gin.Context) {
	if s.repo == nil {
		s.respondError(c, http.StatusNotFound, apperrors.NotFound("report storage is not configured"))
		return
	}
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, apperrors.InputInvalid("invalid report id"))
		return
	}

	if c.DefaultQuery("kind", "cross_section") == "time_series" {
		report, err := s.repo.GetTimeSeriesReport(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, http.StatusNotFound, apperrors.NotFound(err.Error()))
			return
		}
		s.respondTimeSeriesReport(c, report)
		return
	}

	report, err := s.repo.GetReport(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, http.StatusNotFound, apperrors.NotFound(err.Error()))
		return
	}
	s.respondReport(c, report)
}

func (s *Server) runCrossSection(c *gin.Context, req *AnalyzeRequest) (*stats.Report, error) {
	smpl, err := tabular.ParseRows(req.Rows, tabular.Options{
		Types:  req.Types,
		Orders: req.Orders,
	})
	if err != nil {
		return nil, err
	}

	models := make([]*theory.TheoreticalModel, 0, len(req.Models))
	for _, payload := range req.Models {
		model, err := tabular.ParseModelRows(payload.Name, payload.Rows)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	report, err := s.engine.Analyze(smpl, models)
	if err != nil {
		return nil, err
	}
	s.persistReport(c, report)
	return report, nil
}

func (s *Server) runTimeSeries(c *gin.Context, req *TimeSeriesRequest) (*stats.TimeSeriesReport, error) {
	panel, err := tabular.ParsePanelRows(req.Rows)
	if err != nil {
		return nil, err
	}
	report, err := s.analyzer.Analyze(panel)
	if err != nil {
		return nil, err
	}
	s.persistTimeSeries(c, report)
	return report, nil
}

// Persistence is best-effort: a storage failure is logged, not surfaced, so
// the caller still gets the computed report.
func (s *Server) persistReport(c *gin.Context, report *stats.Report) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveReport(c.Request.Context(), *report); err != nil {
		s.logger.Error("failed to persist report %s: %v", report.ID, err)
	}
}

func (s *Server) persistTimeSeries(c *gin.Context, report *stats.TimeSeriesReport) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveTimeSeriesReport(c.Request.Context(), *report); err != nil {
		s.logger.Error("failed to persist time-series report %s: %v", report.ID, err)
	}
}

func (s *Server) respondReport(c *gin.Context, report *stats.Report) {
	switch c.DefaultQuery("format", "json") {
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.RenderMarkdown(report)))
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", export.ToHTML(export.RenderMarkdown(report)))
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := export.WriteCSV(c.Writer, report); err != nil {
			s.logger.Error("failed to stream csv: %v", err)
		}
	default:
		c.JSON(http.StatusOK, report)
	}
}

func (s *Server) respondTimeSeriesReport(c *gin.Context, report *stats.TimeSeriesReport) {
	switch c.DefaultQuery("format", "json") {
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.RenderTimeSeriesMarkdown(report)))
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", export.ToHTML(export.RenderTimeSeriesMarkdown(report)))
	default:
		c.JSON(http.StatusOK, report)
	}
}

func (s *Server) respondAnalysisError(c *gin.Context, err error) {
	switch {
	case core.IsHardInputError(err):
		s.respondError(c, http.StatusBadRequest, apperrors.WithCode(apperrors.CodeInputInvalid, err))
	case core.IsModelError(err):
		s.respondError(c, http.StatusBadRequest, apperrors.WithCode(apperrors.CodeModelInvalid, err))
	default:
		s.respondError(c, http.StatusInternalServerError, err)
	}
}

func (s *Server) respondError(c *gin.Context, status int, err error) {
	s.logger.Warn("request failed: %v", err)
	c.JSON(status, ErrorResponse{
		Code:  apperrors.GetCode(err),
		Error: err.Error(),
	})
}

package handlers

import (
	"net/http"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/middleware"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/services"
	"careercraft_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler serves the analysis operations. ATS scoring and keyword
// extraction are free, so they sit behind the per-user rate limiter
// instead of the credit meter.
type AnalysisHandler struct {
	*BaseHandler
	analysisService services.AnalysisService
	limiter         *middleware.RateLimiter
}

func NewAnalysisHandler(v *validator.Validator, analysisService services.AnalysisService, limiter *middleware.RateLimiter) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler:     NewBaseHandler(v),
		analysisService: analysisService,
		limiter:         limiter,
	}
}

func (h *AnalysisHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analysis := rg.Group("/analysis")
	{
		analysis.POST("/ats-score",
			middleware.OperationMiddleware(models.OpATSScore),
			h.limiter.Middleware(),
			h.ATSScore,
		)
		analysis.POST("/keywords",
			middleware.OperationMiddleware(models.OpKeywordExtract),
			h.limiter.Middleware(),
			h.ExtractKeywords,
		)
		analysis.POST("/communication",
			middleware.OperationMiddleware(models.OpCommunicationAnalysis),
			h.AnalyzeCommunication,
		)
		analysis.GET("/communication", h.ListReports)
		analysis.GET("/communication/:id", h.GetReport)
	}
}

func (h *AnalysisHandler) ATSScore(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ATSScoreRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.analysisService.ATSScore(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) ExtractKeywords(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.KeywordExtractRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.analysisService.ExtractKeywords(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) AnalyzeCommunication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CommunicationAnalysisRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.analysisService.AnalyzeCommunication(c.Request.Context(), userID, IdempotencyKey(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AnalysisHandler) GetReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.analysisService.GetReport(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) ListReports(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	resp, err := h.analysisService.ListReports(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

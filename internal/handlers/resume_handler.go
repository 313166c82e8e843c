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

type ResumeHandler struct {
	*BaseHandler
	resumeService services.ResumeService
}

func NewResumeHandler(v *validator.Validator, resumeService services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler:   NewBaseHandler(v),
		resumeService: resumeService,
	}
}

func (h *ResumeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	resumes := rg.Group("/resumes")
	{
		resumes.POST("/generate", middleware.OperationMiddleware(models.OpResumeGenerate), h.Generate)
		resumes.POST("/:id/tailor", middleware.OperationMiddleware(models.OpResumeTailor), h.Tailor)
		resumes.GET("", h.List)
		resumes.GET("/:id", h.Get)
		resumes.PUT("/:id", h.Update)
		resumes.DELETE("/:id", h.Delete)
		resumes.GET("/:id/versions", h.Versions)
		resumes.GET("/:id/tailored/:tailoredId", h.GetTailored)
	}
}

func (h *ResumeHandler) Generate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateResumeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.resumeService.Generate(c.Request.Context(), userID, IdempotencyKey(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ResumeHandler) Tailor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.TailorResumeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.resumeService.Tailor(c.Request.Context(), userID, IdempotencyKey(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.resumeService.Get(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	resp, err := h.resumeService.List(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateResumeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.resumeService.Update(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.resumeService.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted"})
}

func (h *ResumeHandler) GetTailored(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.resumeService.GetTailored(userID, c.Param("id"), c.Param("tailoredId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) Versions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	versions, err := h.resumeService.Versions(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

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

type InterviewHandler struct {
	*BaseHandler
	interviewService services.InterviewService
}

func NewInterviewHandler(v *validator.Validator, interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      NewBaseHandler(v),
		interviewService: interviewService,
	}
}

func (h *InterviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	interviews := rg.Group("/interviews")
	{
		interviews.POST("/prep", middleware.OperationMiddleware(models.OpInterviewPrep), h.Prep)
		interviews.GET("", h.List)
		interviews.GET("/:id", h.Get)
		interviews.DELETE("/:id", h.Delete)
	}
}

func (h *InterviewHandler) Prep(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InterviewPrepRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.interviewService.Prep(c.Request.Context(), userID, IdempotencyKey(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.interviewService.Get(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InterviewHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	resp, err := h.interviewService.List(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.interviewService.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

package handlers

import (
	"net/http"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/services"
	"careercraft_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the operator endpoints: manual credit adjustments
// and per-user ledger inspection. Routes are mounted behind the admin
// role check.
type AdminHandler struct {
	*BaseHandler
	creditService services.CreditService
	userService   services.UserService
}

func NewAdminHandler(v *validator.Validator, creditService services.CreditService, userService services.UserService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   NewBaseHandler(v),
		creditService: creditService,
		userService:   userService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.POST("/credits/adjust", h.AdjustCredits)
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.GET("/users/:id/credits", h.GetUserHistory)
		admin.PUT("/users/:id/plan", h.UpdatePlan)
	}
}

func (h *AdminHandler) AdjustCredits(c *gin.Context) {
	var req dto.AdjustCreditsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.creditService.AdminAdjust(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	resp, err := h.userService.GetProfile(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.userService.ListUsers(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	var req dto.UpdatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdatePlan(c.Param("id"), models.PlanType(req.Plan))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetUserHistory(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.creditService.GetHistory(c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

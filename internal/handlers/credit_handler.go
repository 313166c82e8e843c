package handlers

import (
	"net/http"

	"careercraft_backend/internal/services"
	"careercraft_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	*BaseHandler
	creditService services.CreditService
}

func NewCreditHandler(v *validator.Validator, creditService services.CreditService) *CreditHandler {
	return &CreditHandler{
		BaseHandler:   NewBaseHandler(v),
		creditService: creditService,
	}
}

func (h *CreditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	credits := rg.Group("/credits")
	{
		credits.GET("/balance", h.GetBalance)
		credits.GET("/history", h.GetHistory)
	}
}

func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.creditService.GetBalance(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CreditHandler) GetHistory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	resp, err := h.creditService.GetHistory(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"crypto/subtle"
	"net/http"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/logger"
	"careercraft_backend/internal/services"
	"careercraft_backend/internal/validator"
	"careercraft_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BillingHandler receives credit purchase notifications from the billing
// collaborator. The webhook is authenticated by a shared secret header,
// not by a user token.
type BillingHandler struct {
	*BaseHandler
	creditService services.CreditService
	webhookSecret string
}

func NewBillingHandler(v *validator.Validator, creditService services.CreditService, webhookSecret string) *BillingHandler {
	return &BillingHandler{
		BaseHandler:   NewBaseHandler(v),
		creditService: creditService,
		webhookSecret: webhookSecret,
	}
}

func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	{
		billing.POST("/webhook", h.PurchaseWebhook)
	}
}

func (h *BillingHandler) PurchaseWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	provided := c.GetHeader("X-Webhook-Secret")
	if h.webhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(provided), []byte(h.webhookSecret)) != 1 {
		logger.CtxWarn(ctx, "Webhook rejected: bad signature", "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.ErrInvalidWebhookSignature)
		return
	}

	var req dto.PurchaseWebhookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.creditService.CreditPurchase(req.UserID, req.Credits, req.EventID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(ctx, "Purchase credited",
		"user_id", req.UserID,
		"credits", req.Credits,
		"event_id", req.EventID,
	)
	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"

	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/services"
	"xideaflow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	*BaseHandler
	paddleService services.PaddleService
}

func NewWebhookHandler(base *BaseHandler, paddleService services.PaddleService) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler:   base,
		paddleService: paddleService,
	}
}

// RegisterRoutes mounts the webhook endpoint. No auth middleware: the
// RSA signature is the authentication.
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/paddle", h.HandlePaddleWebhook)
	}
}

func (h *WebhookHandler) HandlePaddleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := c.Request.ParseForm(); err != nil {
		logger.CtxWithError(ctx, "Failed to parse webhook form", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid form payload"))
		return
	}
	form := c.Request.PostForm

	if !h.paddleService.VerifyWebhookSignature(form) {
		logger.CtxWarn(ctx, "Webhook rejected: invalid signature",
			"alert_name", form.Get("alert_name"), "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.ErrInvalidWebhookSignature)
		return
	}

	db := h.GetDB(c)

	if err := h.paddleService.HandleWebhook(ctx, db, form); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

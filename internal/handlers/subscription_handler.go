package handlers

import (
	"net/http"

	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/middleware"
	"xideaflow_backend/internal/services"
	"xideaflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
	paddleService       services.PaddleService
	userService         services.UserService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService, paddleService services.PaddleService, userService services.UserService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
		paddleService:       paddleService,
		userService:         userService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	{
		subs.GET("/plans", h.GetPlans)
	}

	authed := rg.Group("/subscriptions")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/current", h.GetCurrent)
		authed.POST("/subscribe", h.Subscribe)
		authed.POST("/checkout", h.CreateCheckout)
		authed.POST("/cancel", h.Cancel)
	}
}

func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	db := h.GetDB(c)

	plans, err := h.subscriptionService.GetPlans(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": plans,
		"count": len(plans),
	})
}

func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	sub, err := h.subscriptionService.GetUserActiveSubscription(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Subscribe activates a plan for the user directly: previous
// subscriptions deactivate, the plan's included credits land at once.
// Paid plans normally go through CreateCheckout instead, with
// activation arriving via the subscription_created webhook.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	sub, err := h.subscriptionService.CreateUserSubscription(db, userID, req.PlanID, nil, nil)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// CreateCheckout returns a provider checkout URL for a paid plan.
func (h *SubscriptionHandler) CreateCheckout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetMe(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	checkout, err := h.paddleService.CreateSubscriptionCheckout(db, userID, req.PlanID, user.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkout)
}

// Cancel deactivates the local subscription immediately and asks the
// provider to stop billing. A provider failure is logged, not returned:
// the local state is already final and the provider retries are manual.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	sub, err := h.subscriptionService.GetUserActiveSubscription(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.subscriptionService.CancelSubscription(db, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if sub.PaddleSubscriptionID != nil {
		if err := h.paddleService.CancelProviderSubscription(*sub.PaddleSubscriptionID); err != nil {
			logger.CtxWarn(c.Request.Context(), "Provider cancellation failed after local cancel",
				"error", err.Error(), "user_id", userID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription cancelled",
	})
}

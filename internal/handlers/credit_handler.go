package handlers

import (
	"net/http"

	"xideaflow_backend/internal/middleware"
	"xideaflow_backend/internal/services"
	"xideaflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	*BaseHandler
	creditService services.CreditService
	userService   services.UserService
}

func NewCreditHandler(base *BaseHandler, creditService services.CreditService, userService services.UserService) *CreditHandler {
	return &CreditHandler{
		BaseHandler:   base,
		creditService: creditService,
		userService:   userService,
	}
}

func (h *CreditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	credits := rg.Group("/credits")
	credits.Use(middleware.AuthMiddleware())
	{
		credits.GET("", h.GetBalance)
		credits.GET("/check", h.CheckAvailability)
		credits.POST("/purchase", h.Purchase)
		credits.GET("/history", h.GetHistory)
	}
}

func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	balance, err := h.creditService.GetUserCredits(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (h *CreditHandler) CheckAvailability(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	required := ParseQueryInt(c, "required", 1)
	db := h.GetDB(c)

	check, err := h.creditService.CheckCreditAvailability(db, userID, required)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

// Purchase creates a pending transaction and returns the provider
// checkout URL. Credits land after the webhook confirms payment.
func (h *CreditHandler) Purchase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PurchaseCreditsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetMe(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	checkout, err := h.creditService.PurchaseCredits(db, userID, req.Credits, user.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkout)
}

func (h *CreditHandler) GetHistory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	history, err := h.creditService.GetCreditHistory(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

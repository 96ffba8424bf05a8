package handlers

import (
	"net/http"

	"xideaflow_backend/internal/middleware"
	"xideaflow_backend/internal/services"
	"xideaflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	*BaseHandler
	marketplaceService services.MarketplaceService
}

func NewMarketplaceHandler(base *BaseHandler, marketplaceService services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{
		BaseHandler:        base,
		marketplaceService: marketplaceService,
	}
}

func (h *MarketplaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	market := rg.Group("/marketplace")
	{
		market.GET("/prompts", h.BrowsePrompts)
	}

	authed := rg.Group("/marketplace")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/prompts/use", h.UsePrompt)
	}
}

// BrowsePrompts is public: the catalog doubles as a storefront.
func (h *MarketplaceHandler) BrowsePrompts(c *gin.Context) {
	var req dto.BrowsePromptsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	c.JSON(http.StatusOK, h.marketplaceService.BrowsePrompts(req))
}

func (h *MarketplaceHandler) UsePrompt(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UsePromptRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.marketplaceService.UsePrompt(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

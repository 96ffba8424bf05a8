package handlers

import (
	"net/http"

	"xideaflow_backend/internal/middleware"
	"xideaflow_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	*BaseHandler
	catalogService      services.ServiceCatalogService
	subscriptionService services.SubscriptionService
}

func NewServiceHandler(base *BaseHandler, catalogService services.ServiceCatalogService, subscriptionService services.SubscriptionService) *ServiceHandler {
	return &ServiceHandler{
		BaseHandler:         base,
		catalogService:      catalogService,
		subscriptionService: subscriptionService,
	}
}

func (h *ServiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	svcs := rg.Group("/services")
	{
		svcs.GET("", h.ListServices)
	}

	authed := rg.Group("/services")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/:id/access", h.CheckAccess)
	}
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	db := h.GetDB(c)

	services, err := h.catalogService.ListActive(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

func (h *ServiceHandler) CheckAccess(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	serviceID := c.Param("id")
	db := h.GetDB(c)

	access, err := h.subscriptionService.CheckServiceAccess(db, userID, serviceID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, access)
}

package handlers

import (
	"net/http"

	"xideaflow_backend/internal/middleware"
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/services"
	"xideaflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SchedulerHandler struct {
	*BaseHandler
	schedulerService services.SchedulerService
}

func NewSchedulerHandler(base *BaseHandler, schedulerService services.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{
		BaseHandler:      base,
		schedulerService: schedulerService,
	}
}

func (h *SchedulerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	content := rg.Group("/content")
	content.Use(middleware.AuthMiddleware())
	{
		content.POST("/schedule", h.Schedule)
		content.GET("/scheduled", h.List)
		content.GET("/scheduled/:id", h.Get)
		content.PATCH("/scheduled/:id", h.Update)
		content.POST("/scheduled/:id/cancel", h.Cancel)
	}
}

func (h *SchedulerHandler) Schedule(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleContentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	content, err := h.schedulerService.Schedule(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, content)
}

func (h *SchedulerHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListContentRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.schedulerService.List(h.GetDB(c), userID, models.ContentStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *SchedulerHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	content, err := h.schedulerService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

func (h *SchedulerHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	content, err := h.schedulerService.Update(h.GetDB(c), userID, c.Param("id"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

func (h *SchedulerHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	content, err := h.schedulerService.Cancel(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

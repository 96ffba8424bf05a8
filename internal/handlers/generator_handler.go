package handlers

import (
	"net/http"

	"xideaflow_backend/internal/middleware"
	"xideaflow_backend/internal/services"
	"xideaflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GeneratorHandler struct {
	*BaseHandler
	generatorService services.GeneratorService
}

func NewGeneratorHandler(base *BaseHandler, generatorService services.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{
		BaseHandler:      base,
		generatorService: generatorService,
	}
}

func (h *GeneratorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gen := rg.Group("/generate")
	gen.Use(middleware.AuthMiddleware())
	{
		gen.POST("/ad-copy", h.GenerateAdCopy)
		gen.POST("/email", h.GenerateEmail)
		gen.POST("/headlines", h.GenerateHeadlines)
		gen.POST("/hooks", h.GenerateHooks)
		gen.POST("/post", h.GeneratePost)
		gen.POST("/voice-script", h.GenerateVoiceScript)
		gen.POST("/prompt-template", h.GeneratePromptTemplate)
	}
}

func (h *GeneratorHandler) GenerateAdCopy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AdCopyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.generatorService.GenerateAdCopy(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GeneratorHandler) GenerateEmail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.generatorService.GenerateEmail(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GeneratorHandler) GenerateHeadlines(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.HeadlineRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.generatorService.GenerateHeadlines(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GeneratorHandler) GenerateHooks(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.HookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.generatorService.GenerateHooks(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GeneratorHandler) GeneratePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.generatorService.GeneratePost(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GeneratorHandler) GenerateVoiceScript(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VoiceScriptRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.generatorService.GenerateVoiceScript(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GeneratorHandler) GeneratePromptTemplate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PromptTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.generatorService.GeneratePromptTemplate(c.Request.Context(), h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

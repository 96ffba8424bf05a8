package services

import (
	"context"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/services/dto"

	"gorm.io/gorm"
)

// GeneratorService exposes each template generator behind the shared
// billable-action gates.
type GeneratorService interface {
	GenerateAdCopy(ctx context.Context, db *gorm.DB, userID string, req dto.AdCopyRequest) (*dto.GenerationResult, error)
	GenerateEmail(ctx context.Context, db *gorm.DB, userID string, req dto.EmailRequest) (*dto.GenerationResult, error)
	GenerateHeadlines(ctx context.Context, db *gorm.DB, userID string, req dto.HeadlineRequest) (*dto.GenerationResult, error)
	GenerateHooks(ctx context.Context, db *gorm.DB, userID string, req dto.HookRequest) (*dto.GenerationResult, error)
	GeneratePost(ctx context.Context, db *gorm.DB, userID string, req dto.PostRequest) (*dto.GenerationResult, error)
	GenerateVoiceScript(ctx context.Context, db *gorm.DB, userID string, req dto.VoiceScriptRequest) (*dto.GenerationResult, error)
	GeneratePromptTemplate(ctx context.Context, db *gorm.DB, userID string, req dto.PromptTemplateRequest) (*dto.GenerationResult, error)
}

type GeneratorServiceImpl struct {
	billing BillableActionService
}

func NewGeneratorService(billing BillableActionService) GeneratorService {
	return &GeneratorServiceImpl{billing: billing}
}

func (s *GeneratorServiceImpl) run(ctx context.Context, db *gorm.DB, userID, serviceName string, action models.CreditActionType, generate GenerateFunc) (*dto.GenerationResult, error) {
	result, meta, err := s.billing.Execute(ctx, db, userID, serviceName, action, generate)
	if err != nil {
		return nil, err
	}
	return &dto.GenerationResult{
		Result:      result,
		CreditsUsed: meta.CreditsUsed,
		Service:     meta.ServiceName,
		Success:     true,
		Message:     "Content generated successfully",
	}, nil
}

func (s *GeneratorServiceImpl) GenerateAdCopy(ctx context.Context, db *gorm.DB, userID string, req dto.AdCopyRequest) (*dto.GenerationResult, error) {
	return s.run(ctx, db, userID, ServiceAdCopyGenerator, models.ActionGenerateAdCopy, func() (interface{}, error) {
		return BuildAdCopy(req), nil
	})
}

func (s *GeneratorServiceImpl) GenerateEmail(ctx context.Context, db *gorm.DB, userID string, req dto.EmailRequest) (*dto.GenerationResult, error) {
	return s.run(ctx, db, userID, ServiceEmailGenerator, models.ActionGenerateEmail, func() (interface{}, error) {
		return BuildEmail(req), nil
	})
}

func (s *GeneratorServiceImpl) GenerateHeadlines(ctx context.Context, db *gorm.DB, userID string, req dto.HeadlineRequest) (*dto.GenerationResult, error) {
	return s.run(ctx, db, userID, ServiceHeadlineGenerator, models.ActionGenerateHeadline, func() (interface{}, error) {
		return BuildHeadlines(req), nil
	})
}

func (s *GeneratorServiceImpl) GenerateHooks(ctx context.Context, db *gorm.DB, userID string, req dto.HookRequest) (*dto.GenerationResult, error) {
	return s.run(ctx, db, userID, ServiceHookGenerator, models.ActionGenerateHook, func() (interface{}, error) {
		return BuildHooks(req), nil
	})
}

func (s *GeneratorServiceImpl) GeneratePost(ctx context.Context, db *gorm.DB, userID string, req dto.PostRequest) (*dto.GenerationResult, error) {
	return s.run(ctx, db, userID, ServicePostGenerator, models.ActionGeneratePost, func() (interface{}, error) {
		return BuildPost(req), nil
	})
}

func (s *GeneratorServiceImpl) GenerateVoiceScript(ctx context.Context, db *gorm.DB, userID string, req dto.VoiceScriptRequest) (*dto.GenerationResult, error) {
	return s.run(ctx, db, userID, ServiceVoiceScriptWriter, models.ActionGenerateVoiceScript, func() (interface{}, error) {
		return BuildVoiceScript(req), nil
	})
}

func (s *GeneratorServiceImpl) GeneratePromptTemplate(ctx context.Context, db *gorm.DB, userID string, req dto.PromptTemplateRequest) (*dto.GenerationResult, error) {
	return s.run(ctx, db, userID, ServicePromptTemplateGenerator, models.ActionGeneratePromptTemplate, func() (interface{}, error) {
		return BuildPromptTemplate(req), nil
	})
}

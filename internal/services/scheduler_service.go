package services

import (
	"context"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SchedulerService manages queued social media posts. Scheduling is a
// billable action (free on every plan, but metered); edits and
// cancellations are not.
type SchedulerService interface {
	Schedule(ctx context.Context, db *gorm.DB, userID string, req dto.ScheduleContentRequest) (*models.ScheduledContent, error)
	List(db *gorm.DB, userID string, status models.ContentStatus) (*dto.ScheduledContentResponse, error)
	Get(db *gorm.DB, userID, id string) (*models.ScheduledContent, error)
	Update(db *gorm.DB, userID, id string, req dto.UpdateContentRequest) (*models.ScheduledContent, error)
	Cancel(db *gorm.DB, userID, id string) (*models.ScheduledContent, error)
}

type SchedulerServiceImpl struct {
	contentRepo repositories.ScheduledContentRepository
	billing     BillableActionService
	clock       Clock
}

func NewSchedulerService(contentRepo repositories.ScheduledContentRepository, billing BillableActionService, clock Clock) SchedulerService {
	return &SchedulerServiceImpl{contentRepo: contentRepo, billing: billing, clock: clock}
}

func (s *SchedulerServiceImpl) Schedule(ctx context.Context, db *gorm.DB, userID string, req dto.ScheduleContentRequest) (*models.ScheduledContent, error) {
	if !req.ScheduledAt.After(s.clock.Now()) {
		return nil, apperrors.ErrScheduleInPast
	}

	result, _, err := s.billing.Execute(ctx, db, userID, ServiceContentScheduler, models.ActionScheduleContent, func() (interface{}, error) {
		content := &models.ScheduledContent{
			UserID:      userID,
			Content:     req.Content,
			Platform:    models.ContentPlatform(req.Platform),
			ScheduledAt: req.ScheduledAt.UTC(),
			Status:      models.ContentStatusScheduled,
		}
		if err := s.contentRepo.Create(db, content); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return content, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.ScheduledContent), nil
}

func (s *SchedulerServiceImpl) List(db *gorm.DB, userID string, status models.ContentStatus) (*dto.ScheduledContentResponse, error) {
	items, err := s.contentRepo.ListByUser(db, userID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ScheduledContentResponse{Items: items, Count: len(items)}, nil
}

func (s *SchedulerServiceImpl) Get(db *gorm.DB, userID, id string) (*models.ScheduledContent, error) {
	content, err := s.contentRepo.FindByID(db, userID, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return content, nil
}

// Update only touches content that has not left the SCHEDULED state.
func (s *SchedulerServiceImpl) Update(db *gorm.DB, userID, id string, req dto.UpdateContentRequest) (*models.ScheduledContent, error) {
	content, err := s.Get(db, userID, id)
	if err != nil {
		return nil, err
	}
	if content.Status != models.ContentStatusScheduled {
		return nil, apperrors.ErrContentNotEditable
	}

	if req.Content != nil {
		content.Content = *req.Content
	}
	if req.Platform != nil {
		content.Platform = models.ContentPlatform(*req.Platform)
	}
	if req.ScheduledAt != nil {
		if !req.ScheduledAt.After(s.clock.Now()) {
			return nil, apperrors.ErrScheduleInPast
		}
		content.ScheduledAt = req.ScheduledAt.UTC()
	}

	if err := s.contentRepo.Update(db, content); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return content, nil
}

func (s *SchedulerServiceImpl) Cancel(db *gorm.DB, userID, id string) (*models.ScheduledContent, error) {
	content, err := s.Get(db, userID, id)
	if err != nil {
		return nil, err
	}
	if content.Status != models.ContentStatusScheduled {
		return nil, apperrors.ErrContentNotEditable
	}

	content.Status = models.ContentStatusCancelled
	if err := s.contentRepo.Update(db, content); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return content, nil
}

package handlers

import (
	"xideaflow_backend/internal/services"
	"xideaflow_backend/internal/validator"
)

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	CreditHandler       *CreditHandler
	SubscriptionHandler *SubscriptionHandler
	WebhookHandler      *WebhookHandler
	ServiceHandler      *ServiceHandler
	GeneratorHandler    *GeneratorHandler
	MarketplaceHandler  *MarketplaceHandler
	SchedulerHandler    *SchedulerHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.Auth),
		UserHandler:         NewUserHandler(base, sc.User),
		CreditHandler:       NewCreditHandler(base, sc.Credit, sc.User),
		SubscriptionHandler: NewSubscriptionHandler(base, sc.Subscription, sc.Paddle, sc.User),
		WebhookHandler:      NewWebhookHandler(base, sc.Paddle),
		ServiceHandler:      NewServiceHandler(base, sc.Catalog, sc.Subscription),
		GeneratorHandler:    NewGeneratorHandler(base, sc.Generator),
		MarketplaceHandler:  NewMarketplaceHandler(base, sc.Marketplace),
		SchedulerHandler:    NewSchedulerHandler(base, sc.Scheduler),
	}
}

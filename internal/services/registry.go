package services

import (
	"xideaflow_backend/internal/config"
	"xideaflow_backend/internal/repositories"
)

// ServiceContainer wires repositories into services once at startup.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Credit       CreditService
	Subscription SubscriptionService
	Usage        UsageService
	Paddle       PaddleService
	Billing      BillableActionService
	Generator    GeneratorService
	Marketplace  MarketplaceService
	Scheduler    SchedulerService
	Catalog      ServiceCatalogService
}

func NewServiceContainer(cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	creditRepo := repositories.NewCreditRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	usageRepo := repositories.NewUsageRepository()
	serviceRepo := repositories.NewServiceRepository()
	contentRepo := repositories.NewScheduledContentRepository()

	clock := NewClock()
	paddleClient := NewPaddleClient(cfg)

	creditService := NewCreditService(creditRepo, paddleClient)
	subscriptionService := NewSubscriptionService(subscriptionRepo, creditRepo, creditService, clock)
	usageService := NewUsageService(usageRepo, clock)
	paddleService := NewPaddleService(paddleClient, creditRepo, subscriptionRepo, creditService, subscriptionService)
	billing := NewBillableActionService(serviceRepo, subscriptionService, creditService, usageService)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, creditService),
		User:         NewUserService(userRepo),
		Credit:       creditService,
		Subscription: subscriptionService,
		Usage:        usageService,
		Paddle:       paddleService,
		Billing:      billing,
		Generator:    NewGeneratorService(billing),
		Marketplace:  NewMarketplaceService(billing),
		Scheduler:    NewSchedulerService(contentRepo, billing, clock),
		Catalog:      NewServiceCatalogService(serviceRepo),
	}
}

package seeder

import (
	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/internal/services"

	"gorm.io/gorm"
)

// Seed loads the service catalog and the default subscription plans.
// Safe to run on every startup: services are upserted by name and
// plans are only created when missing.
func Seed(db *gorm.DB) error {
	serviceRepo := repositories.NewServiceRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()

	if err := seedServices(db, serviceRepo); err != nil {
		return err
	}
	if err := seedPlans(db, serviceRepo, subscriptionRepo); err != nil {
		return err
	}

	logger.Info("Database seeding completed")
	return nil
}

type catalogEntry struct {
	Name        string
	DisplayName string
	Description string
	CreditCost  int
}

var serviceCatalog = []catalogEntry{
	{services.ServiceAdCopyGenerator, "AI Ad Copy Generator", "Platform-optimized ad copy with CTAs and character limits", 3},
	{services.ServiceEmailGenerator, "Email Generator AI", "Professional emails for marketing, welcome and follow-up flows", 4},
	{services.ServiceHeadlineGenerator, "AI Headline Generator", "Attention-grabbing headlines for articles and landing pages", 2},
	{services.ServiceHookGenerator, "Hook Generator AI", "Scroll-stopping hooks for short-form content", 2},
	{services.ServicePostGenerator, "Post Generator AI", "Complete social media posts with hashtags", 3},
	{services.ServicePromptMarketplace, "AI Prompt Marketplace", "Curated prompt templates ready to use", 1},
	{services.ServicePromptTemplateGenerator, "Prompt Template Generator", "Reusable prompt templates with variables", 2},
	{services.ServiceVoiceScriptWriter, "AI Voice Script Writer", "Voice-over scripts paced for a target duration", 5},
	{services.ServiceContentScheduler, "Content Scheduler", "Queue posts for later publishing", 0},

	{"content_generation", "Content Generation", "General-purpose content generation", 1},
	{"email_writer", "Email Writer", "Quick single-purpose email drafts", 1},
	{"hook_generator", "Hook Generator", "Legacy hook generation endpoint", 1},
	{"image_generator", "Image Generator", "AI image generation", 3},
	{"post_scheduler", "Post Scheduler", "Legacy post scheduling endpoint", 1},
}

func seedServices(db *gorm.DB, serviceRepo repositories.ServiceRepository) error {
	for _, entry := range serviceCatalog {
		svc := &models.Service{
			Name:        entry.Name,
			DisplayName: entry.DisplayName,
			Description: entry.Description,
			CreditCost:  entry.CreditCost,
			IsActive:    true,
		}
		if err := serviceRepo.Upsert(db, svc); err != nil {
			return err
		}
	}
	logger.Info("Service catalog seeded", "services", len(serviceCatalog))
	return nil
}

type planBinding struct {
	ServiceName string
	UsageLimit  int
	UsagePeriod models.UsagePeriod
}

type planSeed struct {
	Name            string
	Description     string
	Price           float64
	CreditsIncluded int
	DurationDays    int
	IsRecurring     bool
	PaddlePlanID    *string
	Bindings        []planBinding
}

func strPtr(s string) *string { return &s }

// allServices binds every catalog service with one shared limit.
func allServices(limit int, period models.UsagePeriod) []planBinding {
	bindings := make([]planBinding, 0, len(serviceCatalog))
	for _, entry := range serviceCatalog {
		bindings = append(bindings, planBinding{entry.Name, limit, period})
	}
	return bindings
}

var planSeeds = []planSeed{
	{
		Name:            "Free",
		Description:     "Try the platform with a small monthly allowance",
		Price:           0,
		CreditsIncluded: 10,
		DurationDays:    30,
		IsRecurring:     false,
		Bindings: []planBinding{
			{services.ServiceHeadlineGenerator, 5, models.UsagePeriodMonthly},
			{services.ServiceHookGenerator, 3, models.UsagePeriodMonthly},
			{services.ServicePromptMarketplace, 3, models.UsagePeriodMonthly},
		},
	},
	{
		Name:            "Pro",
		Description:     "Full access for creators and small teams",
		Price:           29.99,
		CreditsIncluded: 100,
		DurationDays:    30,
		IsRecurring:     true,
		PaddlePlanID:    strPtr("12345"),
		Bindings:        allServices(100, models.UsagePeriodMonthly),
	},
	{
		Name:            "Business",
		Description:     "Unlimited usage for agencies and heavy users",
		Price:           99.99,
		CreditsIncluded: 500,
		DurationDays:    30,
		IsRecurring:     true,
		PaddlePlanID:    strPtr("67890"),
		Bindings:        allServices(-1, models.UsagePeriodMonthly),
	},
}

func seedPlans(db *gorm.DB, serviceRepo repositories.ServiceRepository, subscriptionRepo repositories.SubscriptionRepository) error {
	for _, seed := range planSeeds {
		if _, err := subscriptionRepo.FindPlanByName(db, seed.Name); err == nil {
			continue
		} else if err != repositories.ErrPlanNotFound {
			return err
		}

		plan := &models.SubscriptionPlan{
			Name:            seed.Name,
			Description:     seed.Description,
			Price:           seed.Price,
			Currency:        "USD",
			CreditsIncluded: seed.CreditsIncluded,
			DurationDays:    seed.DurationDays,
			IsRecurring:     seed.IsRecurring,
			IsActive:        true,
			PaddlePlanID:    seed.PaddlePlanID,
		}

		for _, binding := range seed.Bindings {
			svc, err := serviceRepo.FindByName(db, binding.ServiceName)
			if err != nil {
				return err
			}
			plan.PlanServices = append(plan.PlanServices, models.PlanService{
				ServiceID:   svc.ID,
				UsageLimit:  binding.UsageLimit,
				UsagePeriod: binding.UsagePeriod,
			})
		}

		if err := subscriptionRepo.CreatePlan(db, plan); err != nil {
			return err
		}
		logger.Info("Subscription plan created", "plan", seed.Name)
	}
	return nil
}

package app

import (
	"fmt"

	"xideaflow_backend/internal/config"
	"xideaflow_backend/internal/handlers"
	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/middleware"
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/routes"
	"xideaflow_backend/internal/seeder"
	"xideaflow_backend/internal/services"
	"xideaflow_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Database migration failed", "error", err)
	}

	if err := seeder.Seed(gormDB); err != nil {
		logger.Fatal("Database seeding failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate applies the schema. AutoMigrate covers the tables; the raw
// statements add what gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Service{},
		&models.UserCredit{},
		&models.CreditTransaction{},
		&models.CreditUsageLog{},
		&models.BonusCreditEvent{},
		&models.SubscriptionPlan{},
		&models.PlanService{},
		&models.UserSubscription{},
		&models.UserServiceUsage{},
		&models.ScheduledContent{},
	); err != nil {
		return err
	}

	// One active subscription per user. Partial unique indexes have no
	// gorm tag, so this lives here.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_subscriptions_one_active
		ON user_subscriptions (user_id) WHERE is_active`).Error
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := services.NewServiceContainer(cfg)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

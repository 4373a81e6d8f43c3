package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"healthrisk-backend/internal/assessments"
	googleauth "healthrisk-backend/internal/auth"
	"healthrisk-backend/internal/predictions"
	"healthrisk-backend/internal/risk"
	"healthrisk-backend/internal/services/health"
	"healthrisk-backend/internal/shared/auth"
	"healthrisk-backend/internal/shared/config"
	"healthrisk-backend/internal/shared/server"
	"healthrisk-backend/internal/shared/storage/db"
	"healthrisk-backend/internal/shared/telemetry"
	"healthrisk-backend/internal/users"
)

// App holds the wired dependencies of the API process.
type App struct {
	Config config.Config
	DB     *sql.DB
	Router *gin.Engine

	AssessmentsRepo    assessments.Repo
	UsersRepo          users.Repo
	AssessmentsService *assessments.Service
	UsersService       *users.Service
	PredictionsService *predictions.Service
	HealthService      *health.Service

	AssessmentsHandler *assessments.Handler
	UsersHandler       *users.Handler
	PredictionsHandler *predictions.Handler
	GoogleAuth         *googleauth.GoogleService
}

// Build wires the application from configuration.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	if cfg.Env == "production" && strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required in production")
	}
	auth.Configure(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	model, err := buildModel(cfg)
	if err != nil {
		return nil, err
	}

	if err := buildServices(app, model); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		Health:             app.HealthService,
		AssessmentsHandler: app.AssessmentsHandler,
		UsersHandler:       app.UsersHandler,
		PredictionsHandler: app.PredictionsHandler,
		GoogleAuth:         app.GoogleAuth,
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_memory", map[string]any{"reason": "migrations failed", "error": err})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildModel(cfg config.Config) (*predictions.ClusterModel, error) {
	path := strings.TrimSpace(cfg.RiskModelPath)
	if path == "" {
		return predictions.DefaultModel(), nil
	}
	model, err := predictions.LoadModel(path)
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.model_default", map[string]any{"path": path, "error": err})
			return predictions.DefaultModel(), nil
		}
		return nil, fmt.Errorf("load risk model: %w", err)
	}
	telemetry.Info("bootstrap.model_loaded", map[string]any{"path": path})
	return model, nil
}

func buildServices(app *App, model *predictions.ClusterModel) error {
	var assessmentRepo assessments.Repo
	var userRepo users.Repo

	if app.DB != nil {
		assessmentRepo = &assessments.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		assessmentRepo = assessments.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	assessmentSvc := assessments.NewService(assessmentRepo, risk.NewAssessor(nil))
	userSvc := users.NewService(userRepo)

	advisor := predictions.NewLLMAdvisor(
		app.Config.LLMAPIKey,
		app.Config.LLMBaseURL,
		app.Config.LLMModels,
		time.Duration(app.Config.LLMTimeoutSeconds)*time.Second,
	)
	if !advisor.Enabled() {
		telemetry.Warn("bootstrap.llm_disabled", map[string]any{"reason": "LLM_API_KEY empty"})
	}
	predictionSvc := predictions.NewService(model, advisor)

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.AssessmentsRepo = assessmentRepo
	app.UsersRepo = userRepo
	app.AssessmentsService = assessmentSvc
	app.UsersService = userSvc
	app.PredictionsService = predictionSvc
	app.HealthService = health.NewService(app.DB, predictionSvc.ModelLoaded)
	app.AssessmentsHandler = assessments.NewHandler(assessmentSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.PredictionsHandler = predictions.NewHandler(predictionSvc)
	app.GoogleAuth = googleAuthSvc

	if app.AssessmentsHandler == nil || app.UsersHandler == nil || app.PredictionsHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}

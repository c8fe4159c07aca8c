package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/chatbot"
	"resume-builder/internal/gateway"
	"resume-builder/internal/pending"
	"resume-builder/internal/queue"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
)

const (
	devJWTSecret        = "dev-secret"
	defaultQueueRegion  = "us-east-1"
	pendingStoreMemory  = "memory"
	pendingStorePG      = "postgres"
	pendingStoreObjects = "object"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Queue          queue.Client
	PendingStore   pending.Store
	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	Gateway        *gateway.Client
	Verifier       *auth.HS256
	DraftHandler   *pending.Handler
	ChatbotHandler *chatbot.Handler
	ResumesHandler *resumes.Handler
	HealthService  *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return nil, err
	}

	pendingStore, err := buildPendingStore(cfg, sqlDB, store)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		Store:        store,
		Queue:        queueClient,
		PendingStore: pendingStore,
		Verifier:     verifier,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Verifier:       app.Verifier,
		Health:         app.HealthService,
		DraftHandler:   app.DraftHandler,
		ChatbotHandler: app.ChatbotHandler,
		ResumesHandler: app.ResumesHandler,
		RateLimiter:    middleware.NewRateLimiter(nil),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.EventsQueueURL) == "" {
		return nil, nil
	}
	region := strings.TrimSpace(cfg.AWSRegion)
	if region == "" {
		region = defaultQueueRegion
	}
	return queue.NewSQSClient(ctx, cfg.EventsQueueURL, region)
}

func buildVerifier(cfg config.Config) (*auth.HS256, error) {
	secret := cfg.JWTSecret
	if strings.TrimSpace(secret) == "" && isDevLike(cfg.Env) {
		log.Printf("bootstrap: JWT_SECRET empty; using development secret")
		secret = devJWTSecret
	}
	verifier, err := auth.NewHS256(secret)
	if err != nil {
		return nil, fmt.Errorf("jwt verifier: %w", err)
	}
	return verifier, nil
}

func buildPendingStore(cfg config.Config, sqlDB *sql.DB, objects object.ObjectStore) (pending.Store, error) {
	switch cfg.PendingStore {
	case pendingStorePG:
		if sqlDB == nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: PENDING_STORE=postgres without database; using memory")
				return pending.NewMemoryStore(), nil
			}
			return nil, errors.New("PENDING_STORE=postgres requires DATABASE_URL")
		}
		return pending.NewPGStore(sqlDB), nil
	case pendingStoreObjects:
		return pending.NewObjectStore(objects), nil
	case pendingStoreMemory, "":
		return pending.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown PENDING_STORE %q", cfg.PendingStore)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var resumeRepo resumes.Repo
	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
	}

	if strings.TrimSpace(app.Config.SaveEndpointBaseURL) == "" {
		log.Printf("bootstrap: SUPABASE_URL empty; draft saves will fail with a network error")
	}
	gw := gateway.New(app.Config.SaveEndpointBaseURL, app.Config.SaveEndpointKey, app.Config.SaveTimeout)

	resumeSvc := resumes.NewService(resumeRepo, app.Store, app.Queue)

	app.ResumesRepo = resumeRepo
	app.ResumesService = resumeSvc
	app.Gateway = gw
	app.HealthService = health.NewService(app.DB)
	app.DraftHandler = pending.NewHandler(app.PendingStore, gw)
	app.ChatbotHandler = chatbot.NewHandler(chatbot.NewPendingCollector(app.PendingStore))
	app.ResumesHandler = resumes.NewHandler(resumeSvc)

	if app.DraftHandler == nil || app.ChatbotHandler == nil || app.ResumesHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}

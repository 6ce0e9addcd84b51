package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"healthdocs-backend/internal/documents"
	"healthdocs-backend/internal/files"
	"healthdocs-backend/internal/shared/config"
	"healthdocs-backend/internal/shared/server"
	"healthdocs-backend/internal/shared/storage/db"
	"healthdocs-backend/internal/shared/storage/object"
	localstore "healthdocs-backend/internal/shared/storage/object/local"
	s3store "healthdocs-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API process.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DocumentsRepo documents.Repo
	FilesRepo     files.Repo

	FilesService     *files.Service
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and wires the router.
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

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		Documents: app.DocumentsHandler,
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

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var docRepo documents.Repo
	var fileRepo files.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		fileRepo = &files.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		fileRepo = files.NewMemoryRepo()
	}

	fileSvc := &files.Service{
		Store: app.Store,
		Repo:  fileRepo,
	}
	docSvc := &documents.Service{
		Repo:  docRepo,
		Files: fileSvc,
	}

	app.DocumentsRepo = docRepo
	app.FilesRepo = fileRepo
	app.FilesService = fileSvc
	app.DocumentsService = docSvc
	handler := documents.NewHandler(docSvc, fileSvc)
	handler.MaxUpload = app.Config.MaxUploadBytes
	app.DocumentsHandler = handler
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

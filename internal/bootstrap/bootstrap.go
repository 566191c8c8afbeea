// Package bootstrap idempotently creates and repairs the external resources
// the backend depends on: the asset bucket, database schema and seed
// documents, and the boards composite indexes. Re-running against a healthy
// project performs zero creation side effects.
package bootstrap

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/pipeline"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/repository"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/storage"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Seed document constants. The system user owns the starter content every
// fresh deployment ships with.
var (
	SystemUserID    = uuid.MustParse("00000000-0000-4000-8000-000000000001")
	SystemUserEmail = "system@aacboard.local"
)

const starterBoardName = "Getting Started"

// Retention window for generated assets.
const assetRetentionDays = 30

type Bootstrapper struct {
	db            *gorm.DB
	store         *storage.Service
	cfg           *config.Config
	indexFilePath string
}

func New(db *gorm.DB, store *storage.Service, cfg *config.Config, indexFilePath string) *Bootstrapper {
	if indexFilePath == "" {
		indexFilePath = "firestore.indexes.json"
	}
	return &Bootstrapper{db: db, store: store, cfg: cfg, indexFilePath: indexFilePath}
}

// BucketConfig is the fixed configuration applied to a missing asset bucket.
func (b *Bootstrapper) BucketConfig() storage.BucketConfig {
	return storage.BucketConfig{
		Name:         b.cfg.StorageBucketName,
		Location:     b.cfg.VertexAILocation,
		StorageClass: "STANDARD",
		CORS: storage.CORSRule{
			Origins:       []string{"*"},
			Methods:       []string{"GET", "PUT", "POST"},
			MaxAgeSeconds: 3600,
		},
		Lifecycle: storage.LifecycleRule{DeleteAfterDays: assetRetentionDays},
	}
}

// Steps returns the per-resource setup steps. Resources are independent: a
// failure in one never prevents attempts on the others.
func (b *Bootstrapper) Steps() []pipeline.Step {
	return []pipeline.Step{
		{Name: "storage-bucket", Run: b.ensureBucket},
		{Name: "database-schema", Run: b.ensureSchema},
		{Name: "seed-documents", Run: b.ensureSeedDocuments},
		{Name: "composite-indexes", Run: b.ensureIndexes},
	}
}

// Run executes all resource steps and returns per-resource results. The
// aggregate success flag is the AND over all resources.
func (b *Bootstrapper) Run(ctx context.Context, observer func(pipeline.Result)) ([]pipeline.Result, bool) {
	runner := &pipeline.Runner{Observer: observer}
	results := runner.Run(ctx, b.Steps())
	return results, pipeline.AllSucceeded(results)
}

func (b *Bootstrapper) ensureBucket(ctx context.Context) (string, error) {
	name := b.cfg.StorageBucketName
	if name == "" {
		return "", fmt.Errorf("STORAGE_BUCKET_NAME is not set; choose a bucket name and re-run")
	}

	existing, err := b.store.Describe(name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		// Idempotent no-op: report attributes, attempt no creation.
		return fmt.Sprintf("bucket %q exists (location=%s class=%s created=%s)",
			existing.Name, existing.Location, existing.StorageClass,
			existing.Created.Format(time.RFC3339)), nil
	}

	info, created, err := b.store.Ensure(b.BucketConfig())
	if err != nil {
		return "", err
	}
	if created {
		if err := b.store.VerifyReadWrite(name); err != nil {
			return "", fmt.Errorf("bucket created but unusable: %w", err)
		}
	}
	return fmt.Sprintf("bucket %q created (class=%s retention=%dd), marker round-trip ok",
		info.Name, info.StorageClass, info.Lifecycle.DeleteAfterDays), nil
}

func (b *Bootstrapper) ensureSchema(ctx context.Context) (string, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return "", err
	}

	sqlDB, err := b.db.DB()
	if err != nil {
		return "", err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return "", err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return "", err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return "schema up to date, no migrations applied", nil
		}
		return "", fmt.Errorf("migrations failed: %w", err)
	}
	return "migrations applied", nil
}

func (b *Bootstrapper) ensureSeedDocuments(ctx context.Context) (string, error) {
	users := repository.NewUserRepository(b.db)
	boards := repository.NewBoardRepository(b.db)
	profiles := repository.NewProfileRepository(b.db)

	createdCount := 0

	user, err := users.FindByEmail(ctx, SystemUserEmail)
	if err != nil {
		return "", fmt.Errorf("seed lookup failed: %w", err)
	}
	if user == nil {
		user = &model.User{
			ID:             SystemUserID,
			Email:          SystemUserEmail,
			Name:           "System",
			HashedPassword: "!locked", // never a valid bcrypt hash; account cannot sign in
		}
		if err := users.Create(ctx, user); err != nil && !IsConflict(err) {
			return "", fmt.Errorf("seed user creation failed: %w", err)
		}
		createdCount++
	}

	profile, err := profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("seed profile lookup failed: %w", err)
	}
	if profile == nil {
		profile = &model.CultureProfile{
			ID:                  uuid.New(),
			UserID:              user.ID,
			CulturalPreferences: model.DefaultCulturalPreferences(),
			IsDefault:           true,
		}
		if err := profiles.Create(ctx, profile); err != nil && !IsConflict(err) {
			return "", fmt.Errorf("seed profile creation failed: %w", err)
		}
		createdCount++
	}

	existing, err := boards.GetOwned(ctx, user.ID, repository.ListOptions{SortBy: "name"})
	if err != nil {
		return "", fmt.Errorf("seed board lookup failed: %w", err)
	}
	hasStarter := false
	for _, board := range existing {
		if board.Name == starterBoardName {
			hasStarter = true
			break
		}
	}
	if !hasStarter {
		starter := &model.Board{
			ID:       uuid.New(),
			UserID:   user.ID,
			Name:     starterBoardName,
			IsPublic: true,
			Icons: model.IconPlacements{
				{ID: "seed-yes", Text: "yes", Position: model.GridPosition{X: 0, Y: 0}, Category: "core", Color: "#4caf50"},
				{ID: "seed-no", Text: "no", Position: model.GridPosition{X: 1, Y: 0}, Category: "core", Color: "#f44336"},
				{ID: "seed-help", Text: "help", Position: model.GridPosition{X: 2, Y: 0}, Category: "core", Color: "#2196f3"},
			},
		}
		starter.Touch()
		if err := boards.Create(ctx, starter); err != nil && !IsConflict(err) {
			return "", fmt.Errorf("seed board creation failed: %w", err)
		}
		createdCount++
	}

	// Verification round-trip: the seed data must be readable back.
	if check, err := profiles.GetByUserID(ctx, user.ID); err != nil || check == nil {
		return "", fmt.Errorf("seed verification re-query failed: %v", err)
	}

	if createdCount == 0 {
		return "seed documents already present, nothing created", nil
	}
	return fmt.Sprintf("seed documents created (%d new)", createdCount), nil
}

func (b *Bootstrapper) ensureIndexes(ctx context.Context) (string, error) {
	if err := WriteIndexFile(b.indexFilePath); err != nil {
		return "", fmt.Errorf("writing index definition file: %w", err)
	}

	var count int64
	err := b.db.WithContext(ctx).Raw(
		`SELECT count(*) FROM pg_indexes WHERE tablename = 'boards' AND indexname LIKE 'idx_boards_%'`,
	).Scan(&count).Error
	if err != nil {
		return "", fmt.Errorf("index verification query failed: %w", err)
	}

	want := len(BoardIndexDefinitions())
	if count < int64(want) {
		return "", fmt.Errorf("expected %d boards composite indexes, found %d; run the schema step first", want, count)
	}
	return fmt.Sprintf("%d composite index definitions written to %s, %d indexes present",
		want, b.indexFilePath, count), nil
}

// RemediationFor maps a resource failure to operator guidance. Unclassified
// errors get no extra text; the upstream message is surfaced verbatim.
func RemediationFor(err error) string {
	switch {
	case IsPermissionDenied(err):
		return PermissionRemediation
	case IsConflict(err):
		return ConflictRemediation
	default:
		return ""
	}
}

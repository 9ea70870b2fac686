package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
	"github.com/mohammadpnp/asset-import/internal/infrastructure/db/models"
	"github.com/mohammadpnp/asset-import/internal/infrastructure/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage holds the Postgres handles shared by the job store and the target
// writers: gorm for row-level work, a pgx pool for COPY.
type Storage struct {
	DB      *gorm.DB
	Pool    *pgxpool.Pool
	Jobs    *repository.ImportJobRepository
	Targets app.Targets
}

func OpenStorage(ctx context.Context, databaseURL string, migrate bool) (*Storage, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if migrate {
		if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	bulk := repository.NewBulkInsertRepository(pool)
	return &Storage{
		DB:   db,
		Pool: pool,
		Jobs: repository.NewImportJobRepository(db),
		Targets: app.Targets{
			Assets:     bulk,
			OrderLines: bulk,
			Patcher:    repository.NewEntityPatchRepository(db),
		},
	}, nil
}

func (s *Storage) Close() {
	s.Pool.Close()
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

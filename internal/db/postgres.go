package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
	"github.com/jarahq/jara-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService connects to the configured database. Postgres is the
// default; DB_DRIVER=sqlite selects a file-backed sqlite database, which is
// what local development and CI use.
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	driver := utils.GetEnv("DB_DRIVER", "postgres", log)

	var (
		gdb *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "jara.db", log)
		log.Info("Connecting to sqlite...", "path", path)
		gdb, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Error("Failed to connect to sqlite", "error", err)
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
	default:
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "jara", log)

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

		log.Info("Connecting to Postgres...")
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			log.Error("Failed to connect to Postgres", "error", err)
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}

		if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			log.Error("Failed to enable uuid-ossp extension", "error", err)
			return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
		}
		log.Info("uuid-ossp extension enabled")
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating database tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.UserOTP{},
		&types.Creator{},
		&types.LandingPage{},
		&types.PaymentLink{},
		&types.Transaction{},
		&types.Video{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.db.Dialector.Name() == "postgres" {
		s.log.Info("Configuring foreign key relationships...")
		if err := s.db.Exec(`
			ALTER TABLE "user_token"
			ADD CONSTRAINT "fk_user_token_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "user"("id")
			ON DELETE CASCADE
		`).Error; err != nil {
			return fmt.Errorf("failed to add fk_user_token_user_id: %w", err)
		}
		if err := s.db.Exec(`
			ALTER TABLE "user_otp"
			ADD CONSTRAINT "fk_user_otp_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "user"("id")
			ON DELETE CASCADE
		`).Error; err != nil {
			return fmt.Errorf("failed to add fk_user_otp_user_id: %w", err)
		}
		if err := s.db.Exec(`
			ALTER TABLE "landing_page"
			ADD CONSTRAINT "fk_landing_page_creator_id"
			FOREIGN KEY ("creator_id")
			REFERENCES "creator"("id")
			ON DELETE CASCADE
		`).Error; err != nil {
			return fmt.Errorf("failed to add fk_landing_page_creator_id: %w", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/infrastructure/config"
	"github.com/verdemed/verdemed/infrastructure/persistence/postgres"
	"github.com/verdemed/verdemed/infrastructure/service/identity"
	"github.com/verdemed/verdemed/infrastructure/service/jwt"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
	"github.com/verdemed/verdemed/infrastructure/service/password"
)

// Provisions an ADMIN account: an auth identity plus an ADMIN profile.
// Admins have no role record, so nothing else is written.
func main() {
	email := flag.String("email", "", "admin email (required)")
	adminPassword := flag.String("password", "", "admin password (required)")
	fullName := flag.String("name", "Administrator", "admin full name")
	flag.Parse()

	if *email == "" || *adminPassword == "" {
		log.Fatal("both -email and -password are required")
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       "warn",
		Format:      "text",
		ServiceName: "verdemed-create-admin",
	})

	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	provider := identity.NewProvider(
		postgres.NewIdentityRepository(db),
		postgres.NewRefreshTokenRepository(db),
		tokenService,
		password.NewBcryptPasswordService(cfg.BcryptCost),
		structuredLogger,
		cfg.RefreshTokenSalt,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	admin, err := provider.CreateUser(opCtx, *email, *adminPassword)
	if err != nil {
		log.Fatalf("Failed to create admin identity: %v", err)
	}

	profiles := postgres.NewProfileRepository(db)
	profile := entity.NewProfile(admin.ID, entity.RoleAdmin, *fullName, "", "", "")
	if err := profiles.Create(opCtx, profile); err != nil {
		// Roll back the identity so a retry starts clean.
		if delErr := provider.DeleteUser(opCtx, admin.ID); delErr != nil {
			log.Printf("warning: failed to delete identity after profile error: %v", delErr)
		}
		log.Fatalf("Failed to create admin profile: %v", err)
	}

	fmt.Printf("Admin created\n  id:    %s\n  email: %s\n  name:  %s\n", admin.ID, admin.Email, *fullName)
}

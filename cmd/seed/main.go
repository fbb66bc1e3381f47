package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-forum-auth/config"
	"github.com/oksasatya/go-forum-auth/internal/domain/entity"
	"github.com/oksasatya/go-forum-auth/internal/domain/repository"
	pginfra "github.com/oksasatya/go-forum-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
)

func main() {
	email := flag.String("email", "admin@forum.local", "admin email")
	nickname := flag.String("nickname", "admin", "admin nickname")
	password := flag.String("password", "password123", "admin password")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	hash, err := helpers.NewPasswordHasher(cfg.PasswordHashRounds).Hash(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &entity.Account{
		Email:      *email,
		Nickname:   *nickname,
		Password:   hash,
		Role:       entity.RoleAdmin,
		IsVerified: true,
		SocialType: entity.SocialNative,
	}

	err = pginfra.NewTxManager(db).Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if existing, err := repos.Accounts.GetByEmail(ctx, admin.Email); err == nil {
			admin = existing
			return nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := repos.Accounts.Create(ctx, admin); err != nil {
			return err
		}
		return repos.Points.Create(ctx, &entity.Point{AccountID: admin.ID})
	})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	logger.WithFields(logrus.Fields{"account_id": admin.ID, "email": admin.Email, "role": admin.Role}).Info("admin account ready")
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/oksasatya/go-forum-auth/config"
	"github.com/oksasatya/go-forum-auth/internal/container"
	esinfra "github.com/oksasatya/go-forum-auth/internal/infrastructure/elasticsearch"
	pginfra "github.com/oksasatya/go-forum-auth/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-forum-auth/internal/infrastructure/redis"
	"github.com/oksasatya/go-forum-auth/internal/interface/middleware"
	"github.com/oksasatya/go-forum-auth/internal/router"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
	"github.com/oksasatya/go-forum-auth/pkg/mailer"
	"github.com/oksasatya/go-forum-auth/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Postgres pool, shared with database/sql for transactions
	pool, err := pginfra.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	if err := runMigrations(db, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Timeout:  cfg.RedisTimeout,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer func() { _ = rdb.Close() }()

	sender, closeSender, err := buildSender(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init mail sender: %v", err)
	}
	defer closeSender()

	// Elasticsearch is optional; the account directory is off without it
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := esinfra.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch disabled")
		} else {
			container.SetES(es)
			container.SetAccountIndex(esinfra.NewAccountIndex(es, cfg.ESAccountsIndex))
		}
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.JWTIssuer)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetDB(db)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetSender(sender)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Source-Page", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	reg.AddHealthCheck("postgres", db.PingContext)
	reg.AddHealthCheck("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// buildSender picks how verification mails leave the process:
// logged only, sent through Mailgun, or queued for cmd/email_worker.
func buildSender(cfg *config.Config, logger *logrus.Logger) (mailer.Sender, func(), error) {
	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; verification mails are only logged")
		return mailer.NewLogSender(logger), func() {}, nil
	}
	switch cfg.MailDelivery {
	case config.MailDeliveryQueue:
		pub, err := mailer.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("rabbitmq: %w", err)
		}
		container.SetRabbitPub(pub)
		return mailer.NewQueueSender(pub), pub.Close, nil
	case config.MailDeliveryDirect:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			return nil, nil, errors.New("mailgun not configured")
		}
		mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		if cfg.MailgunAPIBase != "" {
			mg.SetAPIBase(cfg.MailgunAPIBase)
		}
		return mg, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown MAIL_DELIVERY %q", cfg.MailDelivery)
	}
}

func runMigrations(db *sql.DB, migrationsDir string, logger *logrus.Logger) error {
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}

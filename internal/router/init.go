package router

import (
	"github.com/oksasatya/go-forum-auth/internal/application"
	"github.com/oksasatya/go-forum-auth/internal/container"
	pginfra "github.com/oksasatya/go-forum-auth/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-forum-auth/internal/infrastructure/redis"
	handlers "github.com/oksasatya/go-forum-auth/internal/interface/http"
	"github.com/oksasatya/go-forum-auth/internal/router/modules"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
)

type AccountModuleDeps struct {
	AuthService    *application.AuthService
	AccountService *application.AccountService
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
}

func buildAccountDeps() AccountModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetDB()

	accounts := pginfra.NewAccountRepository(db)
	points := pginfra.NewPointRepository(db)
	codes := redisinfra.NewCodeStore(container.GetRedis())

	var directory application.AccountDirectory
	if idx := container.GetAccountIndex(); idx != nil {
		directory = idx
	}

	notifier := application.NewVerificationNotifier(codes, container.GetSender(), cfg, logger)

	authService := application.NewAuthService(
		accounts,
		pginfra.NewTxManager(db),
		codes,
		notifier,
		helpers.NewPasswordHasher(cfg.PasswordHashRounds),
		container.GetJWT(),
		directory,
		logger,
		cfg.VerifyCodeSingleUse,
	)
	accountService := application.NewAccountService(accounts, points, directory, logger)

	return AccountModuleDeps{
		AuthService:    authService,
		AccountService: accountService,
		AuthHandler:    handlers.NewAuthHandler(authService, logger, cfg.CookieDomain, cfg.CookieSecure),
		UserHandler:    handlers.NewUserHandler(accountService, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildAccountDeps()
	r.Add(modules.NewAuthModule(deps.AuthHandler))
	r.Add(modules.NewUserModule(deps.UserHandler, container.GetJWT()))
	if cfg := container.GetConfig(); cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

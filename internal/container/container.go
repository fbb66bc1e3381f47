package container

import (
	"database/sql"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-forum-auth/config"
	esinfra "github.com/oksasatya/go-forum-auth/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/go-forum-auth/pkg/helpers"
	"github.com/oksasatya/go-forum-auth/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	sqlDB       *sql.DB
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	sender       mailer.Sender
	rabbitPub    *mailer.RabbitPublisher
	esClient     *elasticsearch.Client
	accountIndex *esinfra.AccountIndex
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetDB(db *sql.DB)             { sqlDB = db }
func GetDB() *sql.DB               { return sqlDB }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetSender(s mailer.Sender)               { sender = s }
func GetSender() mailer.Sender                { return sender }
func SetRabbitPub(p *mailer.RabbitPublisher)  { rabbitPub = p }
func GetRabbitPub() *mailer.RabbitPublisher   { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetAccountIndex(i *esinfra.AccountIndex) { accountIndex = i }
func GetAccountIndex() *esinfra.AccountIndex  { return accountIndex }

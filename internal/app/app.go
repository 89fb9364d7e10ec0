package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/db"
	budgetsdomain "finance-tracker-go/internal/domain/budgets"
	dashboarddomain "finance-tracker-go/internal/domain/dashboard"
	expensesdomain "finance-tracker-go/internal/domain/expenses"
	incomesdomain "finance-tracker-go/internal/domain/incomes"
	userdomain "finance-tracker-go/internal/domain/user"
	budgetsrepo "finance-tracker-go/internal/repository/budgets"
	dashboardrepo "finance-tracker-go/internal/repository/dashboard"
	expensesrepo "finance-tracker-go/internal/repository/expenses"
	incomesrepo "finance-tracker-go/internal/repository/incomes"
	"finance-tracker-go/internal/repository/inmemory"
	redisrepo "finance-tracker-go/internal/repository/redis"
	userrepo "finance-tracker-go/internal/repository/user"
	"finance-tracker-go/internal/transport/httpserver"
	"finance-tracker-go/internal/transport/httpserver/handler"
	"finance-tracker-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	application := &App{cfg: cfg, db: dbConn}

	if cfg.DB.AutoMigrate {
		if err := migrate(dbConn, log); err != nil {
			_ = application.Close()
			return nil, err
		}
	}

	log.Info("app: initializing categories cache", "backend", cfg.Cache.Backend)
	cache, err := application.newCategoriesCache(log)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("app: initializing router")
	router := NewHandler(cfg, dbConn, cache, log)

	log.Info("app: initializing http server")
	application.httpServer = httpserver.New(cfg, router)

	return application, nil
}

// NewHandler wires repositories, services and handlers on top of dbConn.
// A nil cache disables category caching.
func NewHandler(cfg config.Config, dbConn *gorm.DB, cache expensesdomain.CategoriesCache, log logger.Logger) http.Handler {
	loc := cfg.Location()

	users := userdomain.NewService(userrepo.NewGorm(dbConn))
	expenses := expensesdomain.NewService(expensesrepo.NewGorm(dbConn), users, expensesdomain.Config{
		Location:      loc,
		Cache:         cache,
		CategoriesTTL: cfg.Cache.CategoriesTTL,
	})
	users.SetSeeder(expenses)

	incomes := incomesdomain.NewService(incomesrepo.NewGorm(dbConn), users, loc)
	budgets := budgetsdomain.NewService(budgetsrepo.NewGorm(dbConn), expenses, loc)
	dashboard := dashboarddomain.NewService(dashboardrepo.NewGorm(dbConn), budgets, expenses, loc)

	handlers := handler.New(handler.Services{
		Users:     users,
		Expenses:  expenses,
		Incomes:   incomes,
		Budgets:   budgets,
		Dashboard: dashboard,
	}, log)

	return httpserver.NewRouter(cfg, handlers, users, log)
}

// Migrate loads the configuration and applies pending migrations.
func Migrate(log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return err
	}

	migrateErr := migrate(dbConn, log)
	closeErr := closeDB(dbConn)
	return errors.Join(migrateErr, closeErr)
}

func migrate(dbConn *gorm.DB, log logger.Logger) error {
	applied, err := db.Migrate(dbConn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if len(applied) == 0 {
		log.Info("db: schema up to date")
		return nil
	}
	log.Info("db: migrations applied", "count", len(applied), "files", applied)
	return nil
}

func (a *App) newCategoriesCache(log logger.Logger) (expensesdomain.CategoriesCache, error) {
	switch a.cfg.Cache.Backend {
	case config.CacheBackendNone:
		return nil, nil
	case config.CacheBackendRedis:
		client, err := redisrepo.NewClient(context.Background(), a.cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.redis = client
		return redisrepo.NewCategoriesCache(client, log), nil
	default:
		return inmemory.NewCategoriesCache(time.Now), nil
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, closeDB(a.db))
	}
	return errors.Join(errs...)
}

func closeDB(dbConn *gorm.DB) error {
	sqlDB, err := dbConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

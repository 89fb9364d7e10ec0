package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/transport/httpserver/handler"
	authmw "finance-tracker-go/internal/transport/httpserver/middleware"
	"finance-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, users authmw.UserEnsurer, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{Logger: log.Writer("http", slog.LevelInfo), NoColor: true}))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		auth := authmw.NewJWTAuth(cfg.Auth, users, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Get("/settings", handlers.Common.GetSettings)
			r.Put("/settings", handlers.Common.UpdateSettings)
			r.Get("/settings/currencies", handlers.Common.ListCurrencies)

			r.Get("/dashboard", handlers.Dashboard.Summary)

			r.Get("/categories", handlers.Expenses.ListCategories)
			r.Post("/categories", handlers.Expenses.CreateCategory)
			r.Patch("/categories/{id}", handlers.Expenses.UpdateCategory)
			r.Delete("/categories/{id}", handlers.Expenses.DeleteCategory)

			r.Get("/expenses", handlers.Expenses.ListExpenses)
			r.Post("/expenses", handlers.Expenses.CreateExpense)
			r.Get("/expenses/{id}", handlers.Expenses.GetExpense)
			r.Put("/expenses/{id}", handlers.Expenses.UpdateExpense)
			r.Delete("/expenses/{id}", handlers.Expenses.DeleteExpense)
			r.Delete("/expenses/{id}/purge", handlers.Expenses.PurgeExpense)

			r.Get("/incomes", handlers.Incomes.ListIncomes)
			r.Post("/incomes", handlers.Incomes.CreateIncome)
			r.Get("/incomes/{id}", handlers.Incomes.GetIncome)
			r.Put("/incomes/{id}", handlers.Incomes.UpdateIncome)
			r.Delete("/incomes/{id}", handlers.Incomes.DeleteIncome)
			r.Delete("/incomes/{id}/purge", handlers.Incomes.PurgeIncome)

			r.Get("/budgets", handlers.Budgets.ListBudgets)
			r.Post("/budgets", handlers.Budgets.CreateBudget)
			r.Get("/budgets/{id}", handlers.Budgets.GetBudget)
			r.Put("/budgets/{id}", handlers.Budgets.UpdateBudget)
			r.Delete("/budgets/{id}", handlers.Budgets.DeleteBudget)
		})
	})

	return r
}

// @title           Pinxesplit API
// @version         1.0
// @description     Shared-expense ledger: groups, integer-exact splits, balances, and debt simplification.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pinxesplit/api/docs"
	"github.com/pinxesplit/api/internal/balance"
	"github.com/pinxesplit/api/internal/config"
	"github.com/pinxesplit/api/internal/database"
	"github.com/pinxesplit/api/internal/expense"
	expensesplit "github.com/pinxesplit/api/internal/expense/split"
	"github.com/pinxesplit/api/internal/group"
	"github.com/pinxesplit/api/internal/user"
	"github.com/pinxesplit/api/pkg/logging"
	"github.com/pinxesplit/api/pkg/metrics"
	mw "github.com/pinxesplit/api/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	jwtManager := mw.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	splitFactory := expensesplit.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupService, splitFactory)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature (computed on demand from expense history)
	balanceRepo := balance.NewRepository(db)
	balanceService := balance.NewService(balanceRepo, groupService, expenseService)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Mount("/auth", userHandler.Routes())

		// Everything else requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(jwtManager))

			r.Mount("/users", userHandler.ProtectedRoutes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
		})
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("server starting", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

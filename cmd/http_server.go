package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/activitylog"
	activitylogPostgres "github.com/openclerk/backoffice/internal/activitylog/postgres"
	"github.com/openclerk/backoffice/internal/audittrail"
	audittrailPostgres "github.com/openclerk/backoffice/internal/audittrail/postgres"
	"github.com/openclerk/backoffice/internal/auth"
	authPostgres "github.com/openclerk/backoffice/internal/auth/postgres"
	"github.com/openclerk/backoffice/internal/authz"
	"github.com/openclerk/backoffice/internal/core/entity"
	"github.com/openclerk/backoffice/internal/crud"
	"github.com/openclerk/backoffice/internal/repository"
	"github.com/openclerk/backoffice/internal/transport/rest"
	"github.com/openclerk/backoffice/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	lg := logger.L()

	db, gdb, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	router := chi.NewRouter()
	handlers := buildHandlers(config, gdb, lg)

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gdb,
		Router:   router,
		Handlers: handlers,
	}, nil
}

func buildHandlers(config *internal.Config, gdb *gorm.DB, lg *slog.Logger) rest.Handlers {
	activitySvc := activitylog.NewService(activitylogPostgres.NewActivityLogRepository(gdb), lg)
	auditSvc := audittrail.NewService(audittrailPostgres.NewAuditTrailRepository(gdb), lg)

	authzSvc := authz.NewService(
		repository.New[entity.UserRole](gdb),
		repository.New[entity.RolePermission](gdb),
		repository.New[entity.Permission](gdb),
		repository.New[entity.Role](gdb),
		lg,
	)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authSvc := auth.NewService(authPostgres.NewUserRepository(gdb), tokenGen, config.Security.BCryptCost)

	return rest.Handlers{
		Auth:        auth.NewHandler(authSvc),
		Authz:       authz.NewHandler(authzSvc),
		ActivityLog: activitylog.NewHandler(activitySvc),
		AuditTrail:  audittrail.NewHandler(auditSvc),

		Customers:      entityHandler[entity.Customer](gdb, "Customer", activitySvc, auditSvc, lg),
		Leads:          entityHandler[entity.Lead](gdb, "Lead", activitySvc, auditSvc, lg),
		Employees:      entityHandler[entity.Employee](gdb, "Employee", activitySvc, auditSvc, lg),
		LeaveRequests:  entityHandler[entity.LeaveRequest](gdb, "LeaveRequest", activitySvc, auditSvc, lg),
		PayrollRecords: entityHandler[entity.PayrollRecord](gdb, "PayrollRecord", activitySvc, auditSvc, lg),
		Accounts:       entityHandler[entity.Account](gdb, "Account", activitySvc, auditSvc, lg),
		Transactions:   entityHandler[entity.Transaction](gdb, "Transaction", activitySvc, auditSvc, lg),
		Budgets:        entityHandler[entity.Budget](gdb, "Budget", activitySvc, auditSvc, lg),
		Products:       entityHandler[entity.Product](gdb, "Product", activitySvc, auditSvc, lg),
		StockMovements: entityHandler[entity.StockMovement](gdb, "StockMovement", activitySvc, auditSvc, lg),
		Warehouses:     entityHandler[entity.Warehouse](gdb, "Warehouse", activitySvc, auditSvc, lg),
		Projects:       entityHandler[entity.Project](gdb, "Project", activitySvc, auditSvc, lg),
		ProjectTasks:   entityHandler[entity.ProjectTask](gdb, "ProjectTask", activitySvc, auditSvc, lg),
		TimeEntries:    entityHandler[entity.TimeEntry](gdb, "TimeEntry", activitySvc, auditSvc, lg),
		Roles:          entityHandler[entity.Role](gdb, "Role", activitySvc, auditSvc, lg),
		Permissions:    entityHandler[entity.Permission](gdb, "Permission", activitySvc, auditSvc, lg),
	}
}

func entityHandler[T any](gdb *gorm.DB, name string, activity crud.ActivityLogger, audit crud.AuditRecorder, lg *slog.Logger) *rest.EntityHandler[T] {
	svc := crud.NewService[T](repository.New[T](gdb), name, activity, audit, lg)
	return rest.NewEntityHandler[T](svc)
}

// initDB opens one pgx connection pool and shares it between sqlx (health
// checks, raw queries) and gorm (entity persistence).
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gdb, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	return dbConn, gdb, nil
}

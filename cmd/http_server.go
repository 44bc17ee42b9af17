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

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/Boateng555/assettrack-harren/internal/asset"
	assetPostgres "github.com/Boateng555/assettrack-harren/internal/asset/postgres"
	"github.com/Boateng555/assettrack-harren/internal/core/events"
	"github.com/Boateng555/assettrack-harren/internal/directory"
	"github.com/Boateng555/assettrack-harren/internal/dirsync"
	"github.com/Boateng555/assettrack-harren/internal/employee"
	employeePostgres "github.com/Boateng555/assettrack-harren/internal/employee/postgres"
	"github.com/Boateng555/assettrack-harren/internal/transport/rest"
	"github.com/Boateng555/assettrack-harren/pkg/logger"

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
	Config          *internal.Config
	DB              *sqlx.DB
	Router          *chi.Mux
	Logger          *slog.Logger
	EmployeeHandler *employee.Handler
	AssetHandler    *asset.Handler
	SyncHandler     *dirsync.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.EmployeeHandler, deps.AssetHandler, deps.SyncHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	assetRepo := assetPostgres.NewAssetRepository(gormDB)

	dirClient := directory.NewClient(directory.Config{
		TenantID:       config.Directory.TenantID,
		ClientID:       config.Directory.ClientID,
		ClientSecret:   config.Directory.ClientSecret,
		BaseURL:        config.Directory.BaseURL,
		LoginURL:       config.Directory.LoginURL,
		RequestTimeout: config.Directory.RequestTimeout,
		PageSize:       config.Directory.PageSize,
	}, lg)

	eventBus := events.NewEventBus(lg)
	registerEventHandlers(eventBus, lg)

	employeeService := employee.NewService(employeeRepo, dirClient, lg)
	assetService := asset.NewService(assetRepo, lg)
	syncService := dirsync.NewService(dirClient, employeeRepo, assetRepo, eventBus, config.Sync.CompanyDomain, lg)

	return &Dependencies{
		Config:          config,
		Logger:          lg,
		DB:              db,
		Router:          chi.NewRouter(),
		EmployeeHandler: employee.NewHandler(employeeService),
		AssetHandler:    asset.NewHandler(assetService),
		SyncHandler:     dirsync.NewHandler(syncService),
	}, nil
}

func registerEventHandlers(bus *events.EventBus, lg *slog.Logger) {
	bus.Subscribe(events.EventTypeSyncCompleted, func(ctx context.Context, event events.Event) error {
		lg.Info("reconciliation run completed", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})
	bus.Subscribe(events.EventTypeAssetUnassigned, func(ctx context.Context, event events.Event) error {
		lg.Info("asset released", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumestatus/internal/database"
	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/muhammadolammi/resumestatus/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:   "resumestatus",
	Short: "Resume review status lookup and resubmission",
	Long: `Serves the resume review status page and API backed by a spreadsheet.

Without a subcommand the HTTP server is started.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		config := zap.NewProductionConfig()
		if debug || os.Getenv("DEBUG") == "true" {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, checkSheetCmd, setupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openPrimary builds the configured primary backend.
func openPrimary(ctx context.Context, cfg Config, db *database.Queries) (store.Backend, error) {
	switch cfg.Backend {
	case backendSheets:
		svc, err := store.NewSheetsService(ctx, cfg.Sheets)
		if err != nil {
			return nil, err
		}
		return store.NewSheets(svc, cfg.Sheets.SpreadsheetID, cfg.Sheets.Tab, logger), nil
	case backendXLSX:
		return store.NewXLSX(cfg.XLSXPath, cfg.Sheets.Tab, logger), nil
	case backendPostgres:
		return store.NewPostgres(db), nil
	case backendMemory:
		return store.NewMemory(store.SampleRecords()), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// openSinks wires every configured resubmission sink. Sinks that cannot be
// reached are logged and skipped.
func openSinks(ctx context.Context, cfg Config, db *database.Queries) ([]Sink, func()) {
	var sinks []Sink
	var closers []func()

	if db != nil {
		sinks = append(sinks, journalSink{DB: db})
	}
	if cfg.RabbitMQURL != "" {
		broker, err := newBrokerSink(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("resubmission publishing disabled", zap.Error(err))
		} else {
			sinks = append(sinks, broker)
			closers = append(closers, func() { _ = broker.Close() })
		}
	}
	if cfg.R2 != nil {
		client, err := newR2Client(ctx, cfg.R2)
		if err != nil {
			logger.Error("resubmission archive disabled", zap.Error(err))
		} else {
			sinks = append(sinks, archiveSink{Client: client, Bucket: cfg.R2.Bucket})
		}
	}

	return sinks, func() {
		for _, c := range closers {
			c()
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dbqueries *database.Queries
	if cfg.DBURL != "" {
		db, err := sql.Open("postgres", cfg.DBURL)
		if err != nil {
			return fmt.Errorf("error opening db: %w", err)
		}
		defer db.Close()
		dbqueries = database.New(db)
	}

	primary, err := openPrimary(ctx, cfg, dbqueries)
	if err != nil {
		return err
	}
	var fallback store.Backend
	if cfg.Backend != backendMemory {
		fallback = store.NewMemory(store.SampleRecords())
	}
	adapter := store.NewAdapter(primary, fallback, logger)

	if mem, ok := primary.(*store.Memory); ok {
		logger.Info("running on mock data only")
		for _, rec := range mem.Records() {
			logger.Info("test credentials",
				zap.String("student_code", rec.StudentCode),
				zap.String("auth_code", rec.AuthCode),
				zap.String("status", string(rec.Status)),
			)
		}
	}

	opts := []review.Option{
		review.WithLinkPrefix(cfg.LinkPrefix),
		review.WithLogger(logger),
	}
	sinks, closeSinks := openSinks(ctx, cfg, dbqueries)
	defer closeSinks()
	if len(sinks) > 0 {
		dispatcher := NewDispatcher(logger, defaultDispatchBuffer, sinks...)
		dispatcher.Start(3)
		defer dispatcher.Close()
		opts = append(opts, review.WithListener(dispatcher))
	}
	svc := review.NewService(adapter, opts...)

	rdb := connectRedis(ctx, cfg.RedisAddr, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	if !cfg.Debug && !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(&ServerConfig{
		Service:        svc,
		Limiter:        newLookupLimiter(rdb, cfg.RateLimitPerMinute, logger),
		BackendName:    primary.Name(),
		TrustedProxies: cfg.TrustedProxies,
		Log:            logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("resume status server running",
			zap.String("addr", "http://localhost:"+cfg.Port),
			zap.String("backend", primary.Name()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

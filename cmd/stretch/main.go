package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zachd/stretch-my-time-off/internal/api"
	"github.com/zachd/stretch-my-time-off/internal/calendar"
	"github.com/zachd/stretch-my-time-off/internal/config"
	"github.com/zachd/stretch-my-time-off/internal/daemon"
	"github.com/zachd/stretch-my-time-off/internal/optimizer"
	"github.com/zachd/stretch-my-time-off/internal/planner"
	"github.com/zachd/stretch-my-time-off/internal/prefs"
	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

var (
	configPath string
	cfg        *config.Config
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "stretch",
		Short:        "Stretch your time off",
		Long:         "Place paid days off around public holidays and weekends to get the longest possible breaks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err = initLogger(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(allowanceCmd())
	rootCmd.AddCommand(prefsCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := initProvider(cfg.Calendar)
			if err != nil {
				return err
			}

			manager, store, err := initializeManager(cfg, provider)
			if err != nil {
				return err
			}
			defer store.Close()

			metrics := api.NewMetrics()
			router := api.NewRouter(
				api.NewHandler(manager, metrics, logger),
				metrics,
				cfg.Server.AllowedOrigins,
				logger,
			)

			d := daemon.NewDaemon(cfg.Server.GetAddr(), router, cfg.Server.GetShutdownTimeout(), logger).
				WithWarmUp(warmUpHolidays(provider, cfg.Planner), cfg.Calendar.GetCacheTTL())

			return d.Start()
		},
	}
}

// warmUpHolidays fetches this year's and next year's holidays of the
// configured country so the first requests hit a warm cache
func warmUpHolidays(provider calendar.Provider, plannerCfg config.PlannerConfig) daemon.WarmUpFunc {
	return func(ctx context.Context) error {
		if plannerCfg.Country == "" {
			return nil
		}
		year := dateutil.Today().Year
		for _, y := range []int{year, year + 1} {
			if _, err := provider.Holidays(ctx, plannerCfg.Country, plannerCfg.Region, y); err != nil {
				return fmt.Errorf("failed to warm up %s %d: %w", plannerCfg.Country, y, err)
			}
		}
		return nil
	}
}

func initializeManager(cfg *config.Config, provider calendar.Provider) (*planner.Manager, prefs.Store, error) {
	store, err := initStore(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	weekend, err := optimizer.WeekendSetFromInts(cfg.Planner.WeekendDays)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("invalid weekend days: %w", err)
	}

	manager := planner.NewManager(
		provider,
		prefs.New(store),
		planner.Defaults{
			Country: cfg.Planner.Country,
			Region:  cfg.Planner.Region,
			Weekend: weekend,
			Budget:  cfg.Planner.Budget,
		},
		logger,
	)

	return manager, store, nil
}

func initProvider(calCfg config.CalendarConfig) (calendar.Provider, error) {
	switch calCfg.Type {
	case config.CalendarRemote:
		logger.Info("Using remote holiday API", zap.String("url", calCfg.APIURL))
		remote := calendar.NewRemoteProvider(calCfg.APIURL, calCfg.GetCacheTTL(), logger)

		var fallback calendar.Provider = calendar.NewBuiltinProvider(logger)
		if calCfg.FallbackFile != "" {
			fallback = calendar.NewFileProvider(calCfg.FallbackFile, logger)
		}

		composite := calendar.NewCompositeProvider(remote, fallback, logger)
		if err := composite.LoadFallback(); err != nil {
			logger.Warn("Failed to load fallback holidays", zap.Error(err))
		}
		return composite, nil

	case config.CalendarFile:
		logger.Info("Using holiday file", zap.String("file", calCfg.FallbackFile))
		fp := calendar.NewFileProvider(calCfg.FallbackFile, logger)
		if err := fp.Load(); err != nil {
			return nil, err
		}
		return fp, nil

	case config.CalendarBuiltin, "":
		logger.Debug("Using built-in holiday rules")
		return calendar.NewBuiltinProvider(logger), nil

	default:
		return nil, fmt.Errorf("unknown calendar type: %s", calCfg.Type)
	}
}

func initStore(storageCfg config.StorageConfig) (prefs.Store, error) {
	if err := os.MkdirAll(filepath.Dir(storageCfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	switch storageCfg.Type {
	case config.StorageSQLite:
		return prefs.NewSQLiteStore(storageCfg.Path, logger)
	case config.StorageFile, "":
		return prefs.NewFileStore(storageCfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageCfg.Type)
	}
}

func initLogger(level, logFile string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	console, err := config.Build()
	if err != nil {
		return nil, err
	}
	if logFile == "" {
		return console, nil
	}

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(config.EncoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(zapcore.NewTee(console.Core(), fileCore)), nil
}

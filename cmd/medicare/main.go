package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/zamanlabs/medicare/internal/api"
	"github.com/zamanlabs/medicare/internal/cli"
	"github.com/zamanlabs/medicare/internal/config"
	"github.com/zamanlabs/medicare/internal/db"
	"github.com/zamanlabs/medicare/internal/healthtip"
	"github.com/zamanlabs/medicare/internal/logger"
	"github.com/zamanlabs/medicare/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	serviceName      = "medicare"
	shutdownTimeout  = 10 * time.Second
	redisPingTimeout = 3 * time.Second
)

type commandLine struct {
	EnvFile string `name:"env-file" help:"Optional .env file read before the environment." default:".env"`

	Serve         serveCmd         `cmd:"" help:"Run the HTTP API." default:"1"`
	ResetPassword resetPasswordCmd `cmd:"" help:"Reset an account password."`
}

type serveCmd struct{}

type resetPasswordCmd struct {
	Email       string `required:"" help:"Email of the account to reset."`
	Interactive bool   `short:"i" help:"Prompt for the new password instead of generating a temporary one."`
}

func main() {
	var args commandLine
	ctx := kong.Parse(&args,
		kong.Name(serviceName),
		kong.Description("Zentorra Medicare patient API"),
		kong.UsageOnError(),
	)

	if err := config.LoadDotEnv(args.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: load %s: %v\n", args.EnvFile, err)
		os.Exit(1)
	}
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (cmd *serveCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	time.Local = cfg.Location

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	database, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	healthTips := services.NewHealthTipService(
		newTipGenerator(cfg, log),
		newTipCache(lifecycleCtx, cfg, log),
		services.SystemClock{},
		cfg.HealthTipInterval,
		log,
	)
	go healthTips.Start(lifecycleCtx)

	handler, err := api.NewHandler(database, api.HandlerOptions{
		SecretKey:      cfg.SecretKey,
		Location:       cfg.Location,
		DoctorFeedback: &cfg.DoctorFeedback,
		Logger:         log,
		HealthTips:     healthTips,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(cfg, handler, log)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		handler.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("medicare listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("tz", cfg.Location.String()),
		zap.Bool("health_tip_api", cfg.HealthTipEnabled()),
		zap.Bool("redis", cfg.UsesRedis()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func (cmd *resetPasswordCmd) Run() error {
	cfg, err := config.LoadStorage()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	database, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	authService := services.NewAuthService(db.NewUserRepository(database), nil)
	return cli.RunResetPassword(authService, cli.ResetOptions{
		Email:       cmd.Email,
		Interactive: cmd.Interactive,
		Out:         os.Stdout,
		Logger:      log,
	})
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
		File:        cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	return log, nil
}

func openDatabase(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	database, err := db.Open(db.Options{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		DSN:    cfg.DatabaseURL,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

func newApp(cfg config.Config, handler *api.Handler, log *zap.Logger) *fiber.App {
	app := fiber.New(fiberConfig(cfg, log))

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(api.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(compress.New(compress.Config{Next: skipCompression}))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func fiberConfig(cfg config.Config, log *zap.Logger) fiber.Config {
	fiberCfg := fiber.Config{
		AppName:               "Zentorra Medicare",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler(log),
	}
	if cfg.TrustProxy {
		fiberCfg.ProxyHeader = fiber.HeaderXForwardedFor
	}
	return fiberCfg
}

// Compressed event streams are buffered until they end.
func skipCompression(c *fiber.Ctx) bool {
	return c.Path() == api.WellnessStreamPath
}

// newTipGenerator returns nil when no API is configured so the service
// serves fallback tips.
func newTipGenerator(cfg config.Config, log *zap.Logger) services.TipGenerator {
	if !cfg.HealthTipEnabled() {
		log.Info("health tip API not configured, serving fallback tips")
		return nil
	}
	return healthtip.NewClient(cfg.HealthTipAPIURL, cfg.HealthTipAPIKey, cfg.HealthTipTimeout, log)
}

// newTipCache prefers redis and falls back to process memory when redis is
// not configured or unreachable at startup.
func newTipCache(ctx context.Context, cfg config.Config, log *zap.Logger) services.TipCache {
	if !cfg.UsesRedis() {
		return healthtip.NewMemoryCache()
	}

	client := healthtip.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	cache := healthtip.NewRedisCache(client, healthtip.DefaultCacheKey, 2*cfg.HealthTipInterval)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, caching health tips in memory", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		return healthtip.NewMemoryCache()
	}
	return cache
}

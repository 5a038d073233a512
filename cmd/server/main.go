package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wishmint/wishmint/modules/card"
	"github.com/wishmint/wishmint/modules/generation"
	"github.com/wishmint/wishmint/modules/notification"
	"github.com/wishmint/wishmint/pkg/blob"
	"github.com/wishmint/wishmint/pkg/cardimage"
	"github.com/wishmint/wishmint/pkg/clientip"
	"github.com/wishmint/wishmint/pkg/config"
	"github.com/wishmint/wishmint/pkg/email"
	"github.com/wishmint/wishmint/pkg/httpserver"
	"github.com/wishmint/wishmint/pkg/logger"
	"github.com/wishmint/wishmint/pkg/pg"
	"github.com/wishmint/wishmint/pkg/replicate"
)

type appConfig struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppName string `env:"APP_NAME" envDefault:"wishmint"`

	Server     httpserver.Config
	DB         pg.Config
	Storage    blob.S3Config
	Email      email.Config
	Replicate  replicate.Config
	Generation generation.Config
	Card       card.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
		logger.WithContextExtractors(clientIPExtractor),
	)
	logger.SetAsDefault(log)

	ctx := context.Background()

	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		fatal(ctx, log, "failed to connect to database", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.DB, log); err != nil {
		fatal(ctx, log, "failed to apply migrations", err)
	}

	storage, err := blob.NewS3Storage(ctx, cfg.Storage, blob.WithUploadTimeout(30*time.Second))
	if err != nil {
		fatal(ctx, log, "failed to init object storage", err)
	}

	compositor, err := cardimage.NewCompositor()
	if err != nil {
		fatal(ctx, log, "failed to init card compositor", err)
	}

	var predictor generation.Predictor
	if !cfg.Generation.MockAI {
		client, err := replicate.NewClient(cfg.Replicate)
		if err != nil {
			fatal(ctx, log, "failed to init image provider client", err)
		}
		predictor = client
	} else {
		log.WarnContext(ctx, "MOCK_AI enabled, image provider calls are stubbed")
	}

	var sender email.EmailSender
	if cfg.Email.PostmarkServerToken != "" {
		sender, err = email.NewPostmarkClient(cfg.Email)
		if err != nil {
			fatal(ctx, log, "failed to init email sender", err)
		}
	} else {
		sender = email.NewDevSender(cfg.Email.DevDir)
		log.WarnContext(ctx, "no email provider configured, emails are written to disk",
			slog.String("dir", cfg.Email.DevDir))
	}

	quota := generation.NewQuota(pool, cfg.Generation.RateLimit, cfg.Generation.RateWindow)
	genSvc := generation.NewService(cfg.Generation, quota, storage, predictor, log)
	cardSvc := card.NewService(cfg.Card, card.NewRepository(pool), storage, compositor, log)
	notifSvc := notification.NewService(sender, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(clientip.Middleware)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))

	genSvc.Register(r)
	cardSvc.Register(r)
	notifSvc.Register(r)

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		fatal(ctx, log, "server stopped with error", err)
	}
}

// clientIPExtractor surfaces the resolved client address on every log record
// within a request.
func clientIPExtractor(ctx context.Context) (slog.Attr, bool) {
	if ip := clientip.GetIPFromContext(ctx); ip != "" {
		return logger.ClientIP(ip), true
	}
	return slog.Attr{}, false
}

// requestLogger logs one line per request with status and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func fatal(ctx context.Context, log *slog.Logger, msg string, err error) {
	log.ErrorContext(ctx, msg, logger.Error(err))
	os.Exit(1)
}

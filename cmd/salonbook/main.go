package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmelnyk-dev/salonbook/internal/auth"
	"github.com/dmelnyk-dev/salonbook/internal/config"
	"github.com/dmelnyk-dev/salonbook/internal/db"
	"github.com/dmelnyk-dev/salonbook/internal/handlers"
	"github.com/dmelnyk-dev/salonbook/internal/httpx"
	"github.com/dmelnyk-dev/salonbook/internal/kafkax"
	"github.com/dmelnyk-dev/salonbook/internal/metrics"
	"github.com/dmelnyk-dev/salonbook/internal/otelx"
	"github.com/dmelnyk-dev/salonbook/internal/outbox"
	"github.com/dmelnyk-dev/salonbook/internal/runtime"
	"github.com/dmelnyk-dev/salonbook/internal/storage"
)

func main() {
	config.Load()

	service := config.String("SERVICE_NAME", "salonbook")
	port, err := config.Port("PORT", "8000")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(dbURL); err != nil {
		logger.Error("migrations failed", "err", err)
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	jwtSecret, err := config.RequiredString("JWT_SECRET")
	if err != nil {
		panic(err)
	}
	signer := auth.NewSigner(jwtSecret, config.Duration("TOKEN_TTL", 24*time.Hour))

	kafkaBrokers := config.String("KAFKA_BROKERS", "")

	userRepo := storage.NewUserRepository(pool)
	customerRepo := storage.NewCustomerRepository(pool)
	staffRepo := storage.NewStaffRepository(pool)
	serviceRepo := storage.NewServiceRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	appointmentRepo := storage.NewAppointmentRepository(pool, outboxRepo)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   kafkaBrokers,
		Topic:     config.String("KAFKA_TOPIC", "salonbook.appointments"),
		PollEvery: config.Duration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go outboxPublisher.Run(ctx)

	authHandler := handlers.NewAuthHandler(userRepo, signer, logger)
	customerHandler := handlers.NewCustomerHandler(customerRepo, logger)
	staffHandler := handlers.NewStaffHandler(staffRepo, logger)
	serviceHandler := handlers.NewServiceHandler(serviceRepo, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo, logger)

	reg := prometheus.NewRegistry()
	httpMetrics := metrics.New(reg)

	mux := http.NewServeMux()
	readyChecks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
	}
	if kafkaBrokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(kafkaBrokers)})
	}
	runtime.RegisterHealth(mux, readyChecks...)
	mux.Handle("GET /metrics", metrics.Handler(reg))

	// Login and registration are the only open /api/v1 routes; everything
	// else requires an active account.
	protect := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, auth.RequireUser(signer, userRepo), auth.RequireActive)
	}

	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.Handle("GET /api/v1/auth/me", protect(authHandler.Me))

	mux.Handle("GET /api/v1/customers/{$}", protect(customerHandler.List))
	mux.Handle("POST /api/v1/customers/{$}", protect(customerHandler.Create))
	mux.Handle("GET /api/v1/customers/{id}", protect(customerHandler.Get))
	mux.Handle("PUT /api/v1/customers/{id}", protect(customerHandler.Update))
	mux.Handle("DELETE /api/v1/customers/{id}", protect(customerHandler.Delete))

	mux.Handle("GET /api/v1/staff/{$}", protect(staffHandler.List))
	mux.Handle("POST /api/v1/staff/{$}", protect(staffHandler.Create))
	mux.Handle("GET /api/v1/staff/{id}", protect(staffHandler.Get))
	mux.Handle("PUT /api/v1/staff/{id}", protect(staffHandler.Update))
	mux.Handle("DELETE /api/v1/staff/{id}", protect(staffHandler.Delete))

	mux.Handle("GET /api/v1/services/{$}", protect(serviceHandler.List))
	mux.Handle("POST /api/v1/services/{$}", protect(serviceHandler.Create))
	mux.Handle("GET /api/v1/services/{id}", protect(serviceHandler.Get))
	mux.Handle("PUT /api/v1/services/{id}", protect(serviceHandler.Update))
	mux.Handle("DELETE /api/v1/services/{id}", protect(serviceHandler.Delete))

	mux.Handle("GET /api/v1/appointments/{$}", protect(appointmentHandler.List))
	mux.Handle("POST /api/v1/appointments/{$}", protect(appointmentHandler.Create))
	mux.Handle("GET /api/v1/appointments/{id}", protect(appointmentHandler.Get))
	mux.Handle("PUT /api/v1/appointments/{id}", protect(appointmentHandler.Update))
	mux.Handle("DELETE /api/v1/appointments/{id}", protect(appointmentHandler.Delete))

	middlewares := []httpx.Middleware{
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: splitCSV(config.String("CORS_ALLOWED_ORIGINS", "")),
			MaxAge:         10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpMetrics.Middleware(),
		httpx.WithBodyLimit(int64(config.Int("MAX_BODY_BYTES", 1<<20))),
		httpx.WithTimeout(config.Duration("REQUEST_TIMEOUT", 30*time.Second)),
	}

	rateLimit := config.Int("RATE_LIMIT_PER_MINUTE", 0)
	if rateLimit > 0 {
		if redisAddr := config.String("REDIS_ADDR", ""); redisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
			defer rdb.Close()
			limiter := httpx.NewRedisRateLimiter(rdb, rateLimit, time.Minute, service)
			middlewares = append(middlewares, limiter.Middleware(logger, true))
		} else {
			limiter := httpx.NewRateLimiter(rateLimit, time.Minute)
			middlewares = append(middlewares, limiter.Middleware())
		}
	}

	handler := httpx.Chain(mux, middlewares...)
	handler = otelhttp.NewHandler(handler, service)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

func splitCSV(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

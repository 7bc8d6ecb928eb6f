// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"leasing-workers/internal/common/aws"
	"leasing-workers/internal/common/camunda"
	"leasing-workers/internal/common/config"
	"leasing-workers/internal/common/database"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/common/observability"
	"leasing-workers/internal/draft"
	"leasing-workers/internal/notify"
	"leasing-workers/internal/screening"
	"leasing-workers/internal/search"
	"leasing-workers/internal/store"

	bsp "leasing-workers/internal/workers/application/build-screening-payload"
	pa "leasing-workers/internal/workers/application/persist-application"
	sc "leasing-workers/internal/workers/application/send-confirmation"
	vs "leasing-workers/internal/workers/application/validate-submission"

	su "leasing-workers/internal/workers/listing/search-units"
	cot "leasing-workers/internal/workers/pricing/calculate-order-total"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init external service clients ---
	screeningClient := screening.NewClient(
		cfg.Screening.BaseURL,
		cfg.Screening.APIKey,
		time.Duration(cfg.Screening.TimeoutMS)*time.Millisecond,
		log,
	)

	sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("ses client failed", zap.Error(err))
	}
	snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("sns client failed", zap.Error(err))
	}
	notifier := notify.NewNotifier(sesClient, snsClient, cfg.Notifications.AWS.SES.FromEmail, log)

	applications := store.NewApplicationStore(pg.DB, log)
	drafts := draft.NewStore(rdb.Client, cfg.Draft.KeyPrefix,
		time.Duration(cfg.Draft.TTLHours)*time.Hour, log)
	unitSearch := search.NewUnitSearch(es.Client, cfg.Database.Elasticsearch.UnitIndex, log)

	zapLog.Info("All external service clients initialized")

	// --- Register workers ---
	var workers []*camunda.CamundaWorker
	register := func(taskType string, handler camunda.JobHandler) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		w := camunda.NewWorker(zeebe.GetClient(), taskType, wcfg.MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	register(vs.TaskType, vs.NewHandler(
		&vs.Config{Timeout: workerTimeout(cfg, vs.TaskType)}, log))

	register(bsp.TaskType, bsp.NewHandler(
		&bsp.Config{Timeout: workerTimeout(cfg, bsp.TaskType)}, screeningClient, log))

	register(pa.TaskType, pa.NewHandler(
		&pa.Config{Timeout: workerTimeout(cfg, pa.TaskType)}, applications, drafts, log))

	register(sc.TaskType, sc.NewHandler(
		&sc.Config{Timeout: workerTimeout(cfg, sc.TaskType)}, notifier, log))

	register(cot.TaskType, cot.NewHandler(
		&cot.Config{
			Timeout:        workerTimeout(cfg, cot.TaskType),
			Coupons:        cfg.Pricing.Coupons,
			ShortTermSlope: cfg.Pricing.ShortTermSlope,
			LongTermSlope:  cfg.Pricing.LongTermSlope,
		}, log))

	register(su.TaskType, su.NewHandler(
		&su.Config{Timeout: workerTimeout(cfg, su.TaskType)}, unitSearch, log))

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Metrics endpoint (plus pprof via the default mux) ---
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("metrics server listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, nil); err != nil {
				zapLog.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// --- Wait for shutdown signal ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	zapLog.Info("worker manager stopped")
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	ms := cfg.Workers[taskType].Timeout
	if ms <= 0 {
		ms = cfg.Camunda.Timeout
	}
	return time.Duration(ms) * time.Millisecond
}

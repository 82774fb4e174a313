// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"eligibility-workers/internal/assessment/progress"
	"eligibility-workers/internal/assessment/results"
	"eligibility-workers/internal/clinics"
	awsx "eligibility-workers/internal/common/aws"
	"eligibility-workers/internal/common/camunda"
	"eligibility-workers/internal/common/config"
	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/observability"

	an "eligibility-workers/internal/workers/assessment/assessment-navigate"
	mc "eligibility-workers/internal/workers/assessment/match-clinics"
	sp "eligibility-workers/internal/workers/assessment/save-progress"
	se "eligibility-workers/internal/workers/assessment/score-eligibility"
	sa "eligibility-workers/internal/workers/assessment/submit-assessment"
	sar "eligibility-workers/internal/workers/communication/send-assessment-results"
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

// dependencies is everything the workers are built from.
type dependencies struct {
	zeebe    *camunda.Client
	pg       *database.PostgresClient
	redis    *database.RedisClient
	es       *database.ElasticsearchClient
	clinics  clinics.Source
	progress *progress.Store
	recorder *results.Recorder
	ses      *awsx.SESClient
	obs      *observability.Observability
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.Build(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	ctx := context.Background()
	deps := connect(ctx, cfg, zapLog, log)
	defer deps.close(zapLog)

	started := registerWorkers(cfg, deps, log, zapLog)
	zapLog.Info("workers registered", zap.Int("count", len(started)))

	srv := startHealthServer(cfg, deps, zapLog)

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range started {
		jw.Close()
		jw.AwaitClose()
	}
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error stopping health server", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func connect(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) *dependencies {
	deps := &dependencies{}

	deps.obs = observability.New(cfg.App.Name, observability.WithLogger(zapLog))

	// --- Zeebe ---
	err := retryWithBackoff(func() error {
		var err error
		deps.zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	err = retryWithBackoff(func() error {
		var err error
		deps.pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return deps.pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis ---
	err = retryWithBackoff(func() error {
		var err error
		deps.redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return deps.redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Redis connected successfully")

	// --- Clinic directory ---
	var source clinics.Source
	switch cfg.Assessment.ClinicSource {
	case config.ClinicSourceElasticsearch:
		err = retryWithBackoff(func() error {
			var err error
			deps.es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return deps.es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		source = clinics.NewSearchSource(deps.es, cfg.Assessment.ClinicIndex, cfg.Assessment.ClinicSearchSize, log)
	default:
		source = clinics.NewPostgresSource(deps.pg, log)
	}
	deps.clinics = clinics.NewCachedSource(source, deps.redis, cfg.Assessment.ClinicCacheTTL(), log)

	deps.progress = progress.NewStore(deps.redis, log, progress.WithTTL(cfg.Assessment.ProgressTTL()))
	deps.recorder = results.NewRecorder(deps.pg)

	// --- SES ---
	if ses := cfg.Integrations.AWS.SES; ses.Enabled {
		deps.ses, err = awsx.NewSESClient(ctx, cfg.Integrations.AWS.Region, ses.FromEmail, ses.ConfigurationSet)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		zapLog.Info("SES client initialized", zap.String("region", cfg.Integrations.AWS.Region))
	}

	return deps
}

func (d *dependencies) close(log *zap.Logger) {
	if d.zeebe != nil {
		if err := d.zeebe.Close(); err != nil {
			log.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.pg != nil {
		_ = d.pg.Close()
	}
	d.obs.Shutdown()
}

func registerWorkers(cfg *config.Config, deps *dependencies, log logger.Logger, zapLog *zap.Logger) []worker.JobWorker {
	var started []worker.JobWorker
	client := deps.zeebe.GetClient()

	start := func(taskType string, handler worker.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		started = append(started, camunda.StartWorker(client, taskType, wcfg, handler, zapLog))
	}
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	navCfg := an.LoadConfig()
	navCfg.Timeout = timeout(an.TaskType)
	start(an.TaskType, an.NewHandler(navCfg, deps.progress, log, deps.obs).Handle)

	scoreCfg := se.LoadConfig()
	scoreCfg.Timeout = timeout(se.TaskType)
	start(se.TaskType, se.NewHandler(scoreCfg, log, deps.obs).Handle)

	matchCfg := mc.LoadConfig()
	matchCfg.Timeout = timeout(mc.TaskType)
	matchCfg.MaxMatches = cfg.Assessment.MaxMatches
	start(mc.TaskType, mc.NewHandler(matchCfg, deps.clinics, log, deps.obs).Handle)

	submitCfg := sa.LoadConfig()
	submitCfg.Timeout = timeout(sa.TaskType)
	submitCfg.MaxMatches = cfg.Assessment.MaxMatches
	submitCfg.RecordResults = cfg.Assessment.RecordResults
	start(sa.TaskType, sa.NewHandler(submitCfg, deps.clinics, deps.progress, deps.recorder, log, deps.obs).Handle)

	saveCfg := sp.LoadConfig()
	saveCfg.Timeout = timeout(sp.TaskType)
	start(sp.TaskType, sp.NewHandler(saveCfg, deps.progress, log, deps.obs).Handle)

	if deps.ses != nil {
		sendCfg := sar.LoadConfig()
		sendCfg.Timeout = timeout(sar.TaskType)
		start(sar.TaskType, sar.NewHandler(sendCfg, deps.ses, log, deps.obs).Handle)
	} else {
		zapLog.Info("SES disabled, results email worker not started", zap.String("taskType", sar.TaskType))
	}

	return started
}

func startHealthServer(cfg *config.Config, deps *dependencies, log *zap.Logger) *http.Server {
	if !cfg.Metrics.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		status := http.StatusOK
		for name, ping := range map[string]func(context.Context) error{
			"zeebe":    deps.zeebe.HealthCheck,
			"postgres": deps.pg.Ping,
			"redis":    deps.redis.Ping,
		} {
			checks[name] = "ok"
			if err := ping(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		checks["time"] = time.Now().Format(time.RFC3339)
		writeStatus(w, status, checks)
	})
	mux.Handle(cfg.Metrics.Path, promhttp.Handler())

	srv := &http.Server{Addr: cfg.Metrics.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

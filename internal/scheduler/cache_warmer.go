package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/streamboard-api/internal/config"
	"github.com/vfg2006/streamboard-api/internal/domain"
	"github.com/vfg2006/streamboard-api/internal/usecases/insighting"
	"github.com/vfg2006/streamboard-api/pkg/utils"
)

// CacheWarmConfig representa a configuração do aquecimento periódico do cache
type CacheWarmConfig struct {
	CronSchedule      string
	DaysBack          int
	MaxConcurrentJobs int
	Enabled           bool
}

// WarmRun resume uma execução do aquecimento
type WarmRun struct {
	RunID          string    `json:"run_id"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	Queries        int       `json:"queries"`
	Mocked         int       `json:"mocked"`
	Failed         int       `json:"failed"`
	AccountErrors  int       `json:"account_errors"`
	DurationMillis int64     `json:"duration_ms"`
}

type warmJob struct {
	provider domain.Provider
	kind     domain.QueryKind
}

// CacheWarmerService executa todas as consultas do catálogo em intervalos
// fixos para manter o cache preenchido
type CacheWarmerService struct {
	scheduler   *gocron.Scheduler
	config      CacheWarmConfig
	insighter   insighting.Insighter
	providers   []domain.Provider
	syncRunning bool
	syncMutex   sync.Mutex
	lastRun     WarmRun
}

// NewCacheWarmerService cria o agendador para os provedores habilitados
func NewCacheWarmerService(insighter insighting.Insighter, appConfig *config.Config) *CacheWarmerService {
	warmConfig := CacheWarmConfig{
		CronSchedule:      appConfig.CacheWarm.CronSchedule,
		DaysBack:          appConfig.CacheWarm.DaysBack,
		MaxConcurrentJobs: appConfig.CacheWarm.MaxConcurrentJobs,
		Enabled:           appConfig.CacheWarm.Enabled,
	}
	if warmConfig.MaxConcurrentJobs <= 0 {
		warmConfig.MaxConcurrentJobs = 1
	}

	var providers []domain.Provider
	for _, p := range domain.AllProviders() {
		if appConfig.Features.Enabled(p) {
			providers = append(providers, p)
		}
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       warmConfig.CronSchedule,
		"days_back":           warmConfig.DaysBack,
		"max_concurrent_jobs": warmConfig.MaxConcurrentJobs,
		"enabled":             warmConfig.Enabled,
		"providers":           providers,
	}).Info("Configuração do aquecimento de cache carregada")

	return &CacheWarmerService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    warmConfig,
		insighter: insighter,
		providers: providers,
	}
}

// Start agenda o aquecimento e o interrompe quando o contexto é cancelado
func (s *CacheWarmerService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Aquecimento de cache desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de aquecimento de cache")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar aquecimento de cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de aquecimento de cache")
		s.scheduler.Stop()
	}()

	return nil
}

// Run executa uma rodada completa. Devolve false se outra rodada já está em
// andamento.
func (s *CacheWarmerService) Run(ctx context.Context) (WarmRun, bool) {
	if !s.acquire() {
		logrus.Info("Aquecimento de cache já em andamento, ignorando")
		return WarmRun{}, false
	}
	return s.warm(ctx), true
}

// acquire marca uma rodada como em andamento
func (s *CacheWarmerService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	return true
}

// warm executa a rodada já adquirida e libera a marca ao final
func (s *CacheWarmerService) warm(ctx context.Context) WarmRun {
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runID, err := utils.GenerateID()
	if err != nil {
		runID = "unknown"
	}

	run := WarmRun{RunID: runID, StartedAt: time.Now()}
	logger := logrus.WithField("run_id", runID)

	jobs := s.jobs()
	logger.WithField("queries", len(jobs)).Info("Iniciando aquecimento de cache")

	params := domain.QueryParams{DaysBack: s.config.DaysBack}
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, job := range jobs {
		wg.Add(1)

		go func(job warmJob) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := s.insighter.QueryAll(ctx, job.provider, job.kind, params)

			mutex.Lock()
			defer mutex.Unlock()

			run.Queries++
			if err != nil {
				run.Failed++
				logger.WithFields(logrus.Fields{
					"provider": job.provider,
					"kind":     job.kind,
					"error":    err.Error(),
				}).Error("Erro ao aquecer consulta")
				return
			}

			if result.Mocked {
				run.Mocked++
			}
			for _, outcome := range result.PerAccount {
				if outcome.Status == domain.OutcomeError {
					run.AccountErrors++
				}
			}
		}(job)
	}

	wg.Wait()

	run.CompletedAt = time.Now()
	run.DurationMillis = run.CompletedAt.Sub(run.StartedAt).Milliseconds()

	logger.WithFields(logrus.Fields{
		"duration":       run.CompletedAt.Sub(run.StartedAt).String(),
		"queries":        run.Queries,
		"mocked":         run.Mocked,
		"failed":         run.Failed,
		"account_errors": run.AccountErrors,
	}).Info("Aquecimento de cache concluído")

	s.syncMutex.Lock()
	s.lastRun = run
	s.syncMutex.Unlock()

	return run
}

// TriggerManualRun dispara uma rodada em segundo plano. Devolve false se já
// houver uma em andamento.
func (s *CacheWarmerService) TriggerManualRun(ctx context.Context) bool {
	if !s.acquire() {
		return false
	}

	logrus.Info("Disparando aquecimento de cache manualmente")
	go s.warm(ctx)
	return true
}

// LastRun devolve o resumo da última rodada concluída
func (s *CacheWarmerService) LastRun() WarmRun {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.lastRun
}

// WarmerStatus é o estado exibido no painel de status
type WarmerStatus struct {
	Enabled      bool              `json:"enabled"`
	Running      bool              `json:"running"`
	CronSchedule string            `json:"cron_schedule"`
	Providers    []domain.Provider `json:"providers"`
	LastRun      *WarmRun          `json:"last_run,omitempty"`
}

// GetStatus retorna o status atual do aquecimento
func (s *CacheWarmerService) GetStatus() WarmerStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := WarmerStatus{
		Enabled:      s.config.Enabled,
		Running:      s.syncRunning,
		CronSchedule: s.config.CronSchedule,
		Providers:    s.providers,
	}
	if s.lastRun.RunID != "" {
		last := s.lastRun
		status.LastRun = &last
	}
	return status
}

func (s *CacheWarmerService) jobs() []warmJob {
	var jobs []warmJob
	for _, provider := range s.providers {
		for _, kind := range domain.Kinds(provider) {
			jobs = append(jobs, warmJob{provider: provider, kind: kind})
		}
	}
	return jobs
}

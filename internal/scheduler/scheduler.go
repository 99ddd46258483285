// Package scheduler ejecuta los jobs periódicos (estado de habitaciones, salidas
// vencidas, limpieza de la lista negra) con robfig/cron y permite dispararlos a mano.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/hotel-pms-api/pkg/logger"
	"github.com/jhoicas/hotel-pms-api/pkg/metrics"
)

// ErrUnknownJob el nombre no corresponde a ningún job registrado.
var ErrUnknownJob = errors.New("scheduler: job desconocido")

// JobFunc cuerpo de un job. El resultado se devuelve tal cual al disparo manual.
type JobFunc func(ctx context.Context) (interface{}, error)

// JobInfo estado visible de un job registrado.
type JobInfo struct {
	Name    string     `json:"name"`
	Spec    string     `json:"spec"`
	Next    *time.Time `json:"next_run,omitempty"`
	Prev    *time.Time `json:"prev_run,omitempty"`
	Running bool       `json:"running"`
}

type job struct {
	name    string
	spec    string
	fn      JobFunc
	entryID cron.EntryID
	running bool
}

// Scheduler envuelve un *cron.Cron. Una ejecución programada y una manual del mismo
// job comparten resultado en lugar de correr en paralelo.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	jobs  map[string]*job
	group singleflight.Group
}

// Options configuración del scheduler. Metrics puede ser nil.
type Options struct {
	Location *time.Location
	Timeout  time.Duration
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
}

// New construye el scheduler sin arrancarlo.
func New(opts Options) *Scheduler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		timeout: timeout,
		log:     log,
		metrics: opts.Metrics,
		jobs:    make(map[string]*job),
	}
}

// Register agrega un job con su expresión cron (5 campos o descriptores @hourly, @every 1m...).
// Un spec vacío registra el job solo para disparo manual.
func (s *Scheduler) Register(name, spec string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.jobs[name]; dup {
		return fmt.Errorf("scheduler: job %q ya registrado", name)
	}
	j := &job{name: name, spec: spec, fn: fn}
	if spec != "" {
		id, err := s.cron.AddFunc(spec, func() { _, _ = s.run(context.Background(), name) })
		if err != nil {
			return fmt.Errorf("scheduler: spec inválido para %q: %w", name, err)
		}
		j.entryID = id
	}
	s.jobs[name] = j
	return nil
}

// Start arranca el cron en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.Jobs())).Msg("scheduler iniciado")
}

// Stop detiene el cron y espera a que terminen los jobs en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("scheduler detenido")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow ejecuta el job de inmediato. Si ya hay una ejecución en curso, espera y
// devuelve su resultado.
func (s *Scheduler) RunNow(ctx context.Context, name string) (interface{}, error) {
	s.mu.Lock()
	_, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return nil, ErrUnknownJob
	}
	return s.run(ctx, name)
}

// Jobs lista los jobs registrados ordenados por nombre.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := JobInfo{Name: j.name, Spec: j.spec, Running: j.running}
		if j.entryID != 0 {
			e := s.cron.Entry(j.entryID)
			if !e.Next.IsZero() {
				next := e.Next
				info.Next = &next
			}
			if !e.Prev.IsZero() {
				prev := e.Prev
				info.Prev = &prev
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	return out
}

func (s *Scheduler) run(ctx context.Context, name string) (interface{}, error) {
	res, err, _ := s.group.Do(name, func() (interface{}, error) {
		s.mu.Lock()
		j := s.jobs[name]
		j.running = true
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			j.running = false
			s.mu.Unlock()
		}()

		// La ejecución compartida no depende de la cancelación de quien la pidió primero.
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		start := time.Now()
		out, err := j.fn(runCtx)
		elapsed := time.Since(start)

		if err != nil {
			s.observe(name, "error")
			s.log.Error().Err(err).Str("job", name).Dur("elapsed", elapsed).Msg("job falló")
			return nil, err
		}
		s.observe(name, "ok")
		s.log.Info().Str("job", name).Dur("elapsed", elapsed).Msg("job completado")
		return out, nil
	})
	return res, err
}

func (s *Scheduler) observe(name, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SchedulerRuns.WithLabelValues(name, outcome).Inc()
}

// cronLogger adapta el logger de la app a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

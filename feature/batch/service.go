package batch

import (
	"context"
	"time"

	"imgdiff/core/collection"
	"imgdiff/core/locator"
	"imgdiff/core/logger"
	"imgdiff/core/metrics"
	"imgdiff/core/reconcile"
	"imgdiff/core/report"
	"imgdiff/core/resource"
	"imgdiff/core/sink"
	"imgdiff/core/storage"

	"go.uber.org/zap"
)

// Recorder persists the outcome of a batch run.
type Recorder interface {
	Record(ctx context.Context, a, b string, rep *report.Report, runErr error) error
}

// Service handles diff, batch and copy runs.
type Service struct {
	factory  storage.Factory
	writer   *sink.Writer
	defaults reconcile.Config
	cwd      string
	logger   *zap.Logger
	observer metrics.Observer
	recorder Recorder
}

// NewService creates a new batch service. Relative locators are resolved
// against cwd.
func NewService(factory storage.Factory, defaults reconcile.Config, cwd string, logger *zap.Logger) *Service {
	return &Service{
		factory:  factory,
		writer:   sink.NewWriter(factory, logger),
		defaults: defaults,
		cwd:      cwd,
		logger:   logger,
		observer: metrics.Nop(),
	}
}

// WithObserver sets the metrics observer for batch runs.
func (s *Service) WithObserver(o metrics.Observer) *Service {
	if o != nil {
		s.observer = o
	}
	return s
}

// WithRecorder sets the run history recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Defaults returns the configured comparison settings.
func (s *Service) Defaults() reconcile.Config { return s.defaults }

func (s *Service) runLogger(silent bool) *zap.Logger {
	if silent {
		return logger.Silenced(s.logger)
	}
	return s.logger
}

func (s *Service) protocolify(raw string) string {
	if raw == "" {
		return ""
	}
	return locator.Protocolify(raw, s.cwd)
}

// Batch reconciles the collections rooted at opts.A and opts.B, persists
// artifacts when opts.Write is set and emits the report to every sink.
// Any failure aborts the run and no report is returned.
func (s *Service) Batch(ctx context.Context, opts Options) (*report.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	a, b := s.protocolify(opts.A), s.protocolify(opts.B)

	rep, err := s.batch(ctx, opts, a, b)

	summary := report.Summary{}
	if rep != nil {
		summary = rep.Summary()
	}
	s.observer.RecordRun(time.Since(start), summary, err)
	if s.recorder != nil {
		if recErr := s.recorder.Record(ctx, a, b, rep, err); recErr != nil {
			s.logger.Warn("Failed to record batch run", zap.Error(recErr))
		}
	}

	if err != nil {
		return nil, err
	}
	if opts.ExitCode && !rep.Clean() {
		return rep, ErrChangesDetected
	}
	return rep, nil
}

func (s *Service) batch(ctx context.Context, opts Options, a, b string) (*report.Report, error) {
	log := s.runLogger(opts.Silent)

	srcA, err := collection.NewSource(a, s.factory, log)
	if err != nil {
		return nil, err
	}
	srcB, err := collection.NewSource(b, s.factory, log)
	if err != nil {
		return nil, err
	}

	colA, colB, err := collection.HydratePair(ctx, srcA, srcB)
	if err != nil {
		return nil, err
	}

	var saver reconcile.Saver
	if opts.Write != "" {
		saver = sink.NewSaver(s.protocolify(opts.Write), s.writer, log)
	}

	engine := reconcile.NewEngine(reconcile.NewDiffer(opts.Threshold, log), saver, opts.pattern(s.defaults), log)
	rep, err := engine.Reconcile(ctx, colA, colB)
	if err != nil {
		return nil, err
	}

	var sinks []string
	for _, sinkURI := range report.ParseSinks(opts.JSONReport) {
		sinks = append(sinks, s.protocolify(sinkURI))
	}
	if err := report.NewEmitter(s.writer, log).Emit(ctx, rep, sinks); err != nil {
		return nil, err
	}
	return rep, nil
}

// Single compares the two resources at opts.A and opts.B. When opts.Write is
// set the diff image is written to the working directory under the diff
// pattern.
func (s *Service) Single(ctx context.Context, opts Options) (reconcile.Verdict, error) {
	if err := opts.Validate(); err != nil {
		return reconcile.Verdict{}, err
	}
	log := s.runLogger(opts.Silent)

	handleA, err := s.handle(ctx, s.protocolify(opts.A))
	if err != nil {
		return reconcile.Verdict{}, err
	}
	handleB, err := s.handle(ctx, s.protocolify(opts.B))
	if err != nil {
		return reconcile.Verdict{}, err
	}

	verdict, err := reconcile.NewDiffer(opts.Threshold, log).Diff(ctx, handleA, handleB)
	if err != nil {
		return reconcile.Verdict{}, err
	}

	if opts.Write != "" {
		name := locator.DiffName(opts.pattern(s.defaults), handleA.Basename())
		saver := sink.NewSaver(locator.FileURI(s.cwd), s.writer, log)
		if err := saver.Save(ctx, name, verdict.Diff); err != nil {
			return reconcile.Verdict{}, err
		}
	}

	if opts.ExitCode && !verdict.Match {
		return verdict, ErrChangesDetected
	}
	return verdict, nil
}

// handle resolves a single-resource locator and rejects directories.
func (s *Service) handle(ctx context.Context, raw string) (*resource.Handle, error) {
	loc, err := locator.Parse(raw)
	if err != nil {
		return nil, err
	}

	var client storage.Client
	if loc.Kind == locator.KindObject {
		if err := locator.ValidateBucket(loc.Bucket); err != nil {
			return nil, err
		}
		if s.factory == nil {
			return nil, storage.WrapIO("connect", raw, errNoFactory)
		}
		if client, err = s.factory(); err != nil {
			return nil, storage.WrapIO("connect", raw, err)
		}
	}

	h, err := resource.New(loc, client)
	if err != nil {
		return nil, err
	}
	if err := h.RequireFile(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Copy writes every resource of the collection at opts.From under its
// basename into the opts.To sink and returns the number of copied resources.
func (s *Service) Copy(ctx context.Context, opts CopyOptions) (int, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}
	log := s.runLogger(opts.Silent)

	src, err := collection.NewSource(s.protocolify(opts.From), s.factory, log)
	if err != nil {
		return 0, err
	}
	col, err := src.Hydrate(ctx)
	if err != nil {
		return 0, err
	}

	saver := sink.NewSaver(s.protocolify(opts.To), s.writer, log)
	for _, h := range col.Handles() {
		data, err := h.Fetch(ctx, false)
		if err != nil {
			return 0, err
		}
		if err := saver.Save(ctx, h.Basename(), data); err != nil {
			return 0, err
		}
	}
	return col.Len(), nil
}

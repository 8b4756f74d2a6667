package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Writer persists bytes under a sink locator.
type Writer interface {
	Write(ctx context.Context, uri string, data []byte) error
}

// Emitter logs report summaries and writes JSON reports to sinks.
type Emitter struct {
	writer Writer
	logger *zap.Logger
}

// NewEmitter creates an emitter writing through w.
func NewEmitter(w Writer, logger *zap.Logger) *Emitter {
	return &Emitter{writer: w, logger: logger}
}

// ParseSinks splits a comma-separated sink list, dropping blank items.
func ParseSinks(list string) []string {
	var sinks []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			sinks = append(sinks, item)
		}
	}
	return sinks
}

// Marshal renders the report as an indented JSON document.
func Marshal(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "    ")
}

// Emit logs the summary of r and writes its JSON form to every sink.
// All sinks are attempted; failures are joined and returned afterwards.
func (e *Emitter) Emit(ctx context.Context, r *Report, sinks []string) error {
	s := r.Summary()
	e.logger.Info("Batch total report",
		zap.Int("total", s.Total()),
		zap.Int("match", s.Match),
		zap.Int("diff", s.Diff),
		zap.Int("removed", s.Removed),
		zap.Int("new", s.New),
		zap.Strings("match_keys", Keynames(r.Match)),
		zap.Strings("diff_keys", Keynames(r.Diff)),
		zap.Strings("removed_keys", Keynames(r.Removed)),
		zap.Strings("new_keys", Keynames(r.New)),
	)

	if len(sinks) == 0 {
		return nil
	}

	doc, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	var errs []error
	for _, sink := range sinks {
		if err := e.writer.Write(ctx, sink, doc); err != nil {
			e.logger.Error("Failed to write report", zap.String("sink", sink), zap.Error(err))
			errs = append(errs, fmt.Errorf("report sink %s: %w", sink, err))
			continue
		}
		e.logger.Info("Report written", zap.String("sink", sink))
	}
	return errors.Join(errs...)
}

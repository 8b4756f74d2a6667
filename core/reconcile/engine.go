package reconcile

import (
	"context"
	"fmt"

	"imgdiff/core/collection"
	"imgdiff/core/locator"
	"imgdiff/core/report"
	"imgdiff/core/resource"

	"go.uber.org/zap"
)

// Engine reconciles two collections into a report.
type Engine struct {
	differ      *Differ
	saver       Saver
	diffPattern string
	logger      *zap.Logger
}

// NewEngine creates an Engine. saver may be nil, in which case no artifact
// is written. An empty diffPattern falls back to DefaultDiffPattern.
func NewEngine(differ *Differ, saver Saver, diffPattern string, logger *zap.Logger) *Engine {
	if diffPattern == "" {
		diffPattern = DefaultDiffPattern
	}
	return &Engine{
		differ:      differ,
		saver:       saver,
		diffPattern: diffPattern,
		logger:      logger,
	}
}

// Reconcile classifies every key of a and b. Sections are sorted by keyname.
func (e *Engine) Reconcile(ctx context.Context, a, b *collection.Collection) (*report.Report, error) {
	rep := report.New()

	for _, key := range b.Keys() {
		if !a.Has(key) {
			handleB, _ := b.Get(key)
			rep.Removed = append(rep.Removed, handleB.Serialize())
		}
	}

	for _, key := range a.Keys() {
		handleA, _ := a.Get(key)

		handleB, ok := b.Get(key)
		if !ok {
			rep.New = append(rep.New, handleA.Serialize())
			if err := e.persistReference(ctx, handleA); err != nil {
				return nil, err
			}
			continue
		}

		verdict, err := e.differ.Diff(ctx, handleA, handleB)
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", key, err)
		}

		entry := handleA.Serialize().WithPixels(verdict.Pixels)
		if verdict.Match {
			rep.Match = append(rep.Match, entry)
			continue
		}

		rep.Diff = append(rep.Diff, entry)
		if err := e.persistDiff(ctx, handleA, verdict); err != nil {
			return nil, err
		}
	}

	rep.Sort()
	return rep, nil
}

// persistReference writes the A image of a new key under its basename.
func (e *Engine) persistReference(ctx context.Context, h *resource.Handle) error {
	if e.saver == nil {
		return nil
	}
	data, err := h.Fetch(ctx, false)
	if err != nil {
		return err
	}
	return e.saver.Save(ctx, h.Basename(), data)
}

// persistDiff writes the diff image, then the new reference image.
func (e *Engine) persistDiff(ctx context.Context, h *resource.Handle, v Verdict) error {
	if e.saver == nil {
		return nil
	}
	if err := e.saver.Save(ctx, locator.DiffName(e.diffPattern, h.Basename()), v.Diff); err != nil {
		return err
	}
	return e.persistReference(ctx, h)
}

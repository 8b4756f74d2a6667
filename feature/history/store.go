package history

import (
	"context"

	"imgdiff/core/metrics"
	"imgdiff/core/report"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultLimit bounds List when no limit is given.
const DefaultLimit = 20

// MaxLimit caps the number of runs returned by List.
const MaxLimit = 100

// Store persists runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the history tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Run{}, &Entry{})
}

// Record stores a run. rep is nil for failed runs.
func (s *Store) Record(ctx context.Context, a, b string, rep *report.Report, runErr error) error {
	run := Run{A: a, B: b, Status: metrics.OutcomeClean}

	var entries []Entry
	switch {
	case runErr != nil:
		run.Status = metrics.OutcomeError
		run.Error = runErr.Error()
	case rep != nil:
		sum := rep.Summary()
		run.New, run.Diff, run.Match, run.Removed = sum.New, sum.Diff, sum.Match, sum.Removed
		if !rep.Clean() {
			run.Status = metrics.OutcomeChanged
		}
		entries = append(entries, toEntries("new", rep.New)...)
		entries = append(entries, toEntries("diff", rep.Diff)...)
		entries = append(entries, toEntries("match", rep.Match)...)
		entries = append(entries, toEntries("removed", rep.Removed)...)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&run).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].RunID = run.ID
		}
		return tx.Create(&entries).Error
	})
}

func toEntries(category string, in []report.Entry) []Entry {
	out := make([]Entry, 0, len(in))
	for _, e := range in {
		out = append(out, Entry{
			Category: category,
			Keyname:  e.Keyname,
			URI:      e.URI,
			Pixels:   e.Pixels,
		})
	}
	return out
}

// List returns the most recent runs without their entries.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var runs []Run
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&runs).Error
	return runs, err
}

// Get returns a run with its entries.
func (s *Store) Get(ctx context.Context, id uint) (*Run, error) {
	var run Run
	if err := s.db.WithContext(ctx).Preload("Entries").First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

package integrity

import (
	"context"

	"imgdiff/core/collection"
	"imgdiff/core/locator"
	"imgdiff/core/storage"
	"imgdiff/feature/integrity/checks"

	"go.uber.org/zap"
)

// Report is the outcome of an integrity check.
type Report struct {
	Root   string              `json:"root"`
	Status string              `json:"status"`
	Images *checks.ImageReport `json:"images"`
}

// Report statuses.
const (
	StatusOK     = "ok"
	StatusIssues = "issues"
)

// Service handles integrity checks of batch roots.
type Service struct {
	factory storage.Factory
	cwd     string
	logger  *zap.Logger
}

// NewService creates a new integrity service. Relative roots are resolved
// against cwd.
func NewService(factory storage.Factory, cwd string, logger *zap.Logger) *Service {
	return &Service{
		factory: factory,
		cwd:     cwd,
		logger:  logger,
	}
}

// Resolve protocolifies root.
func (s *Service) Resolve(root string) string {
	return locator.Protocolify(root, s.cwd)
}

// Check verifies that root exists and that its images are usable in a
// batch run.
func (s *Service) Check(ctx context.Context, root string) (*Report, error) {
	uri := s.Resolve(root)

	src, err := collection.NewSource(uri, s.factory, s.logger)
	if err != nil {
		return nil, err
	}
	if err := checks.CheckRoot(ctx, src); err != nil {
		return nil, err
	}

	images, err := checks.CheckImages(ctx, src)
	if err != nil {
		return nil, err
	}

	rep := &Report{Root: uri, Status: StatusOK, Images: images}
	if !images.OK() {
		rep.Status = StatusIssues
	}
	s.logger.Info("Integrity check finished",
		zap.String("root", uri),
		zap.String("status", rep.Status),
		zap.Int("total", images.Total),
		zap.Int("undecodable", len(images.Undecodable)),
		zap.Int("collisions", len(images.Collisions)))
	return rep, nil
}

// Package service implements the ledger workflow on top of the block tree.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"go.uber.org/zap"
)

var (
	// ErrCandidateHashMismatch is returned when the claimed hash of a
	// candidate does not match the one computed against its parent.
	ErrCandidateHashMismatch = errors.New("candidate hash mismatch")
	// ErrCandidateRejected is returned when the approver declines a candidate.
	ErrCandidateRejected = errors.New("candidate rejected")
)

const (
	modeAdd   = "add"
	modeCheck = "check"
	modeView  = "view_node"
)

// LedgerService commits candidates to the tree once they are verified
// locally and approved remotely.
type LedgerService struct {
	tree      Tree
	approver  Approver
	resources Resources
	metrics   Metrics
	logger    *zap.Logger
}

// NewLedgerService builds the ledger with the provided dependencies.
func NewLedgerService(
	tree Tree,
	approver Approver,
	resources Resources,
	metrics Metrics,
	logger *zap.Logger,
) (*LedgerService, error) {
	if tree == nil {
		return nil, errors.New("tree is required")
	}
	if approver == nil {
		return nil, errors.New("approver is required")
	}
	if resources == nil {
		return nil, errors.New("resources is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		tree:      tree,
		approver:  approver,
		resources: resources,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Add verifies, approves and commits c, then registers its resource.
// Candidates the tree would refuse anyway are rejected before any approval
// is requested.
func (s *LedgerService) Add(ctx context.Context, c model.CandidateBlock) (node *model.Node, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(modeAdd, err, started)
	}()

	logger := s.logger.With(zap.String("id", c.ID), zap.String("parent_id", c.ParentID))

	if err := s.precheck(c); err != nil {
		logger.Warn("candidate refused locally", zap.Error(err))
		return nil, err
	}
	if !s.tree.VerifyCandidateHash(c) {
		logger.Warn("candidate hash does not verify", zap.String("hash", c.Hash))
		return nil, fmt.Errorf("candidate %q: %w", c.ID, ErrCandidateHashMismatch)
	}

	approved, err := s.approver.Approve(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("approve candidate %q: %w", c.ID, err)
	}
	if !approved {
		logger.Warn("candidate rejected by approver")
		return nil, fmt.Errorf("candidate %q: %w", c.ID, ErrCandidateRejected)
	}

	node, err = s.tree.Insert(c)
	if err != nil {
		return nil, fmt.Errorf("insert candidate %q: %w", c.ID, err)
	}
	s.resources.Register(node)

	logger.Info("block committed",
		zap.Int("index", node.Index),
		zap.String("class", node.Class.String()),
		zap.String("hash", node.Hash),
	)
	return node, nil
}

func (s *LedgerService) precheck(c model.CandidateBlock) error {
	if c.ID == "" {
		return model.ErrEmptyID
	}
	if !c.Class.Valid() || c.Class == model.Root {
		return fmt.Errorf("candidate %q: class %q: %w", c.ID, string(c.Class), model.ErrInvalidClass)
	}
	if _, exists := s.tree.Lookup(c.ID); exists {
		return fmt.Errorf("candidate %q: %w", c.ID, model.ErrDuplicateID)
	}
	return nil
}

// Check reports whether c verifies against the local tree. It never mutates.
func (s *LedgerService) Check(_ context.Context, c model.CandidateBlock) bool {
	started := time.Now()
	ok := s.tree.VerifyCandidateHash(c)
	var err error
	if !ok {
		err = ErrCandidateHashMismatch
	}
	s.metrics.Observe(modeCheck, err, started)

	s.logger.Debug("candidate checked", zap.String("id", c.ID), zap.Bool("ok", ok))
	return ok
}

// View makes sure the resources needed to display id are loaded.
func (s *LedgerService) View(ctx context.Context, id string) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(modeView, err, started)
	}()

	if err := s.resources.EnsureLoadedForView(ctx, id); err != nil {
		return fmt.Errorf("view node %q: %w", id, err)
	}
	return nil
}

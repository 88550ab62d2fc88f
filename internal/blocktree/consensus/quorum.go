package consensus

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"github.com/goodnatureofminers/blocktree/pkg/workerpool"
	"go.uber.org/zap"
)

// Quorum approves a candidate when at least required peers approve it.
// A peer that fails to answer counts as a rejection.
type Quorum struct {
	peers    []Approver
	required int
	logger   *zap.Logger
}

// NewQuorum builds a Quorum. required <= 0 demands every peer.
func NewQuorum(peers []Approver, required int, logger *zap.Logger) (*Quorum, error) {
	if len(peers) == 0 {
		return nil, errors.New("quorum needs at least one peer")
	}
	if required <= 0 {
		required = len(peers)
	}
	if required > len(peers) {
		return nil, fmt.Errorf("quorum of %d exceeds %d peers", required, len(peers))
	}
	return &Quorum{peers: peers, required: required, logger: logger}, nil
}

// Approve implements Approver.
func (q *Quorum) Approve(ctx context.Context, c model.CandidateBlock) (bool, error) {
	var approvals atomic.Int32

	err := workerpool.Process(ctx, len(q.peers), q.peers, func(ctx context.Context, peer Approver) error {
		ok, err := peer.Approve(ctx, c)
		if err != nil {
			q.logger.Warn("peer approval failed", zap.String("id", c.ID), zap.Error(err))
			return nil
		}
		if ok {
			approvals.Add(1)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	got := int(approvals.Load())
	q.logger.Debug("quorum collected",
		zap.String("id", c.ID),
		zap.Int("approvals", got),
		zap.Int("required", q.required),
	)
	return got >= q.required, nil
}

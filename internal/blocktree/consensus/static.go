package consensus

import (
	"context"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
)

// Static answers every candidate with the same decision.
type Static bool

// Approve implements Approver.
func (s Static) Approve(_ context.Context, _ model.CandidateBlock) (bool, error) {
	return bool(s), nil
}

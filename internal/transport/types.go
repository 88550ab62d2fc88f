package transport

import (
	"context"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger is the request surface served over the transports.
	Ledger interface {
		Add(ctx context.Context, c model.CandidateBlock) (*model.Node, error)
		Check(ctx context.Context, c model.CandidateBlock) bool
		View(ctx context.Context, id string) error
	}
)

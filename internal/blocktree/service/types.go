package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Tree interface {
		Lookup(id string) (*model.Node, bool)
		VerifyCandidateHash(c model.CandidateBlock) bool
		Insert(c model.CandidateBlock) (*model.Node, error)
	}
	Approver interface {
		Approve(ctx context.Context, c model.CandidateBlock) (bool, error)
	}
	Resources interface {
		Register(node *model.Node)
		EnsureLoadedForView(ctx context.Context, id string) error
	}
	Metrics interface {
		Observe(mode string, err error, started time.Time)
	}
)

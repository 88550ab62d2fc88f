package resource

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// TreeReader is the read-only view of the block tree the manager needs.
	TreeReader interface {
		Lookup(id string) (*model.Node, bool)
		Ancestors(id string) ([]*model.Node, error)
		Children(id string) ([]*model.Node, error)
	}
	// Loader materializes a resource in the engine.
	Loader interface {
		Load(ctx context.Context, r Resource) error
	}
	Metrics interface {
		ObserveLoad(class string, err error, started time.Time)
		SetRegistered(count int)
	}
)

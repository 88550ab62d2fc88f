// Package consensus provides approvers that decide whether a locally
// verified candidate may be committed.
package consensus

import (
	"context"
	"net/http"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Approver returns the remote half of the commit decision for a candidate.
	Approver interface {
		Approve(ctx context.Context, c model.CandidateBlock) (bool, error)
	}
	PeerMetrics interface {
		Observe(approved bool, err error, started time.Time)
	}
	HTTPDoer interface {
		Do(req *http.Request) (*http.Response, error)
	}
)

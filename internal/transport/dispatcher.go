// Package transport exposes the ledger over newline-delimited JSON and HTTP.
package transport

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/wire"
	"go.uber.org/zap"
)

// ErrUnknownMode is reported for requests whose mode is not served.
var ErrUnknownMode = errors.New("unknown mode")

// Dispatcher routes decoded requests to the ledger by mode.
type Dispatcher struct {
	ledger Ledger
	logger *zap.Logger
}

// NewDispatcher returns a Dispatcher for ledger.
func NewDispatcher(ledger Ledger, logger *zap.Logger) (*Dispatcher, error) {
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{ledger: ledger, logger: logger}, nil
}

// Dispatch serves one request. Failures are reported in the response,
// never as a Go error, so every request gets exactly one answer.
func (d *Dispatcher) Dispatch(ctx context.Context, req wire.Request) wire.Response {
	resp := wire.Response{Mode: req.Mode, ID: req.ID}

	switch req.Mode {
	case wire.ModeAdd:
		c, err := req.Candidate()
		if err != nil {
			return failed(resp, err)
		}
		node, err := d.ledger.Add(ctx, c)
		if err != nil {
			return failed(resp, err)
		}
		resp.OK = true
		resp.Hash = node.Hash
	case wire.ModeCheck:
		c, err := req.Candidate()
		if err != nil {
			return failed(resp, err)
		}
		resp.OK = d.ledger.Check(ctx, c)
		resp.Hash = c.Hash
	case wire.ModeView:
		if err := d.ledger.View(ctx, req.ID); err != nil {
			return failed(resp, err)
		}
		resp.OK = true
	default:
		d.logger.Warn("unknown request mode", zap.String("mode", string(req.Mode)))
		return failed(resp, fmt.Errorf("%w %q", ErrUnknownMode, req.Mode))
	}
	return resp
}

func failed(resp wire.Response, err error) wire.Response {
	resp.OK = false
	resp.Error = err.Error()
	return resp
}

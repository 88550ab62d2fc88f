package consensus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"github.com/goodnatureofminers/blocktree/internal/blocktree/wire"
	"go.uber.org/zap"
)

const maxPeerResponseBytes = 1 << 16

// HTTPPeer asks a remote node to check a candidate against its own tree.
type HTTPPeer struct {
	url     string
	client  HTTPDoer
	metrics PeerMetrics
	logger  *zap.Logger
}

// NewHTTPPeer creates an approver for the peer request endpoint at url.
func NewHTTPPeer(url string, client HTTPDoer, metrics PeerMetrics, logger *zap.Logger) (*HTTPPeer, error) {
	if url == "" {
		return nil, errors.New("peer url is required")
	}
	if client == nil {
		return nil, errors.New("peer http client is required")
	}
	if metrics == nil {
		return nil, errors.New("peer metrics is required")
	}
	return &HTTPPeer{
		url:     url,
		client:  client,
		metrics: metrics,
		logger:  logger.With(zap.String("peer", url)),
	}, nil
}

// Approve implements Approver.
func (p *HTTPPeer) Approve(ctx context.Context, c model.CandidateBlock) (approved bool, err error) {
	started := time.Now()
	defer func() {
		p.metrics.Observe(approved, err, started)
	}()

	body, err := wire.EncodeRequest(wire.NewCheckRequest(c))
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build peer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("send check to peer: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("peer responded with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPeerResponseBytes))
	if err != nil {
		return false, fmt.Errorf("read peer response: %w", err)
	}
	answer, err := wire.DecodeResponse(data)
	if err != nil {
		return false, err
	}

	p.logger.Debug("peer answered", zap.String("id", c.ID), zap.Bool("ok", answer.OK))
	return answer.OK, nil
}

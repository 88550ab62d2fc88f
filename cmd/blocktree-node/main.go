// Package main runs a blocktree ledger node.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/consensus"
	"github.com/goodnatureofminers/blocktree/internal/blocktree/resource"
	"github.com/goodnatureofminers/blocktree/internal/blocktree/service"
	"github.com/goodnatureofminers/blocktree/internal/blocktree/tree"
	"github.com/goodnatureofminers/blocktree/internal/metrics"
	"github.com/goodnatureofminers/blocktree/internal/transport"
)

const (
	modeStdin = "stdin"
	modeHTTP  = "http"
)

type config struct {
	Mode          string        `long:"mode" env:"BLOCKTREE_MODE" description:"request transport" choice:"stdin" choice:"http" default:"stdin"`
	Addr          string        `long:"addr" env:"BLOCKTREE_ADDR" description:"HTTP request listen address" default:":8080"`
	GRPCAddr      string        `long:"grpc-addr" env:"BLOCKTREE_GRPC_ADDR" description:"gRPC health listen address, empty disables" default:":8081"`
	MetricsAddr   string        `long:"metrics-addr" env:"BLOCKTREE_METRICS_ADDR" description:"Prometheus metrics listen address, empty disables" default:":9090"`
	ResourceDir   string        `long:"resource-dir" env:"BLOCKTREE_RESOURCE_DIR" description:"base directory of resource files" default:"objects"`
	Preload       bool          `long:"preload" env:"BLOCKTREE_PRELOAD" description:"preload big resources on start"`
	LoadRate      int           `long:"load-rate" env:"BLOCKTREE_LOAD_RATE" description:"resource loads per second, 0 is unlimited" default:"0"`
	Peers         []string      `long:"peer" env:"BLOCKTREE_PEERS" env-delim:"," description:"peer request endpoint URL, repeatable"`
	Quorum        int           `long:"quorum" env:"BLOCKTREE_QUORUM" description:"peer approvals needed, 0 means all peers" default:"0"`
	RetryAttempts int           `long:"retry-attempts" env:"BLOCKTREE_RETRY_ATTEMPTS" description:"attempts per peer approval" default:"3"`
	RetryBackoff  time.Duration `long:"retry-backoff" env:"BLOCKTREE_RETRY_BACKOFF" description:"backoff step between peer attempts" default:"200ms"`
	PeerTimeout   time.Duration `long:"peer-timeout" env:"BLOCKTREE_PEER_TIMEOUT" description:"HTTP timeout for peer requests" default:"5s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("blocktree node failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.MetricsAddr != "" {
		stopMetrics := startMetricsServer(cfg.MetricsAddr, logger)
		defer stopMetrics()
	}
	if cfg.GRPCAddr != "" {
		if err := startHealthServer(ctx, cfg.GRPCAddr, logger); err != nil {
			return fmt.Errorf("start health server: %w", err)
		}
	}

	hashTree := tree.New(logger.Named("tree"), metrics.NewHashTree())

	resources, err := resource.NewManager(
		cfg.ResourceDir,
		hashTree,
		resource.NewFileLoader(logger.Named("loader")),
		metrics.NewResourceManager(),
		cfg.LoadRate,
		logger.Named("resources"),
	)
	if err != nil {
		return fmt.Errorf("init resource manager: %w", err)
	}

	approver, err := newApprover(cfg, logger.Named("consensus"))
	if err != nil {
		return fmt.Errorf("init approver: %w", err)
	}

	ledger, err := service.NewLedgerService(hashTree, approver, resources, metrics.NewLedger(), logger.Named("ledger"))
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	dispatcher, err := transport.NewDispatcher(ledger, logger.Named("dispatcher"))
	if err != nil {
		return err
	}

	if cfg.Preload {
		if err := resources.PreloadBig(ctx); err != nil {
			return fmt.Errorf("preload resources: %w", err)
		}
	}

	logger.Info("blocktree node ready",
		zap.String("mode", cfg.Mode),
		zap.String("root_hash", hashTree.Root().Hash),
		zap.Int("peers", len(cfg.Peers)),
	)

	switch cfg.Mode {
	case modeHTTP:
		return serveHTTP(ctx, cfg.Addr, transport.NewHTTPHandler(dispatcher, logger.Named("http")), logger)
	case modeStdin:
		return serveStdin(ctx, transport.NewLineServer(dispatcher, logger.Named("stdin")))
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

// serveStdin returns when stdin is exhausted or ctx is done, whichever is
// first. A read blocked on stdin is abandoned on shutdown.
func serveStdin(ctx context.Context, s *transport.LineServer) error {
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, os.Stdin, os.Stdout)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// newApprover approves everything when no peers are configured, otherwise
// asks the peers through a retrying quorum.
func newApprover(cfg config, logger *zap.Logger) (service.Approver, error) {
	if len(cfg.Peers) == 0 {
		logger.Warn("no peers configured, approving every verified candidate")
		return consensus.Static(true), nil
	}

	client := &http.Client{Timeout: cfg.PeerTimeout}
	peers := make([]consensus.Approver, 0, len(cfg.Peers))
	for _, url := range cfg.Peers {
		peer, err := consensus.NewHTTPPeer(url, client, metrics.NewPeerClient(url), logger)
		if err != nil {
			return nil, err
		}
		peers = append(peers, consensus.NewRetrying(peer, cfg.RetryAttempts, cfg.RetryBackoff, logger.With(zap.String("peer", url))))
	}
	return consensus.NewQuorum(peers, cfg.Quorum, logger)
}

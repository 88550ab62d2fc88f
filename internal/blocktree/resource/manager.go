// Package resource maps committed tree nodes to engine resources and loads
// them on demand.
package resource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"github.com/goodnatureofminers/blocktree/pkg/workerpool"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const defaultPreloadWorkers = 8

// Resource is the engine-side record of a committed node.
type Resource struct {
	ID     string
	Class  model.NodeClass
	Path   string
	Loaded bool
}

// Manager tracks registered resources and loads them in tree order.
type Manager struct {
	baseDir        string
	tree           TreeReader
	loader         Loader
	limiter        ratelimit.Limiter
	metrics        Metrics
	logger         *zap.Logger
	preloadWorkers int

	mu        sync.Mutex
	resources map[string]*Resource
	loading   map[*Resource]struct{}
}

// NewManager builds a Manager. loadsPerSecond <= 0 disables throttling.
func NewManager(
	baseDir string,
	tree TreeReader,
	loader Loader,
	metrics Metrics,
	loadsPerSecond int,
	logger *zap.Logger,
) (*Manager, error) {
	if tree == nil {
		return nil, errors.New("resource manager tree is required")
	}
	if loader == nil {
		return nil, errors.New("resource manager loader is required")
	}
	if metrics == nil {
		return nil, errors.New("resource manager metrics is required")
	}

	limiter := ratelimit.NewUnlimited()
	if loadsPerSecond > 0 {
		limiter = ratelimit.New(loadsPerSecond)
	}

	return &Manager{
		baseDir:        baseDir,
		tree:           tree,
		loader:         loader,
		limiter:        limiter,
		metrics:        metrics,
		logger:         logger.With(zap.String("base_dir", baseDir)),
		preloadWorkers: defaultPreloadWorkers,
		resources:      make(map[string]*Resource),
		loading:        make(map[*Resource]struct{}),
	}, nil
}

// Register records a resource for a committed node. Re-registering an id
// replaces the record and marks it unloaded.
func (m *Manager) Register(node *model.Node) {
	if node == nil {
		return
	}

	path := node.FilePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.baseDir, path)
	}

	m.mu.Lock()
	m.resources[node.ID] = &Resource{
		ID:    node.ID,
		Class: node.Class,
		Path:  path,
	}
	count := len(m.resources)
	m.mu.Unlock()

	m.metrics.SetRegistered(count)
	m.logger.Debug("resource registered", zap.String("id", node.ID), zap.String("path", path))
}

// Resource returns a copy of the record registered under id.
func (m *Manager) Resource(id string) (Resource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources[id]
	if !ok {
		return Resource{}, false
	}
	return *r, true
}

// PreloadBig loads every registered building-scale resource.
// Individual load failures are logged; only context errors are returned.
func (m *Manager) PreloadBig(ctx context.Context) error {
	m.mu.Lock()
	ids := make([]string, 0, len(m.resources))
	for id, r := range m.resources {
		if r.Class == model.Big && !r.Loaded {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()
	sort.Strings(ids)

	m.logger.Info("preloading big resources", zap.Int("count", len(ids)))
	return workerpool.Process(ctx, m.preloadWorkers, ids, func(ctx context.Context, id string) error {
		_ = m.load(ctx, id)
		return nil
	})
}

// EnsureLoadedForView loads the node, all of its ancestors and, for big and
// child nodes, its immediate children. Failed loads are logged and skipped.
func (m *Manager) EnsureLoadedForView(ctx context.Context, id string) error {
	node, ok := m.tree.Lookup(id)
	if !ok {
		m.logger.Warn("view of unknown node", zap.String("id", id))
		return fmt.Errorf("view %q: %w", id, model.ErrNotFound)
	}

	targets := []string{node.ID}

	ancestors, err := m.tree.Ancestors(id)
	if err != nil {
		return fmt.Errorf("resolve ancestors: %w", err)
	}
	for _, a := range ancestors {
		targets = append(targets, a.ID)
	}

	if node.Class == model.Big || node.Class == model.Child {
		children, err := m.tree.Children(id)
		if err != nil {
			return fmt.Errorf("resolve children: %w", err)
		}
		for _, c := range children {
			targets = append(targets, c.ID)
		}
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		_ = m.load(ctx, target)
	}
	return nil
}

// load is a no-op for unregistered or already loaded resources, and for
// resources another caller is loading right now.
func (m *Manager) load(ctx context.Context, id string) (err error) {
	m.mu.Lock()
	res, ok := m.resources[id]
	if !ok || res.Loaded {
		m.mu.Unlock()
		return nil
	}
	if _, busy := m.loading[res]; busy {
		m.mu.Unlock()
		return nil
	}
	m.loading[res] = struct{}{}
	snapshot := *res
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.loading, res)
		if err == nil && m.resources[id] == res {
			res.Loaded = true
		}
		m.mu.Unlock()
	}()

	if err = m.take(ctx); err != nil {
		return err
	}

	started := time.Now()
	defer func() {
		m.metrics.ObserveLoad(snapshot.Class.String(), err, started)
	}()

	if err = m.loader.Load(ctx, snapshot); err != nil {
		m.logger.Warn("resource not loaded",
			zap.String("id", id),
			zap.String("path", snapshot.Path),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// take waits for the limiter or for ctx, whichever comes first. The limiter
// cannot be interrupted, so an abandoned wait finishes in the background.
func (m *Manager) take(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	granted := make(chan struct{})
	go func() {
		m.limiter.Take()
		close(granted)
	}()
	select {
	case <-granted:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Package tree implements the hash-linked tree of resource nodes.
package tree

import (
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"github.com/goodnatureofminers/blocktree/internal/clock"
	"go.uber.org/zap"
)

// HashTree owns a root node and every node reachable from it.
//
// Insert is serialized against every other call; lookups and
// verifications only take the read lock and may run in parallel.
type HashTree struct {
	mu     sync.RWMutex
	root   *model.Node
	nodes  map[string]*model.Node
	now    func() time.Time
	nonces NonceSource

	logger  *zap.Logger
	metrics Metrics
}

// New creates a tree holding only the root. metrics may be nil.
func New(logger *zap.Logger, metrics Metrics) *HashTree {
	return NewWithSources(logger, metrics, time.Now, newNonceSource())
}

// NewWithSources is New with an explicit clock and nonce source.
func NewWithSources(logger *zap.Logger, metrics Metrics, now func() time.Time, nonces NonceSource) *HashTree {
	if logger == nil {
		logger = zap.NewNop()
	}
	root := &model.Node{
		ID:        model.RootID,
		Index:     0,
		Timestamp: clock.Millis(now()),
		Nonce:     0,
		Class:     model.Root,
	}
	root.Hash = ComputeChainHash(root, "")

	t := &HashTree{
		root:    root,
		nodes:   map[string]*model.Node{root.ID: root},
		now:     now,
		nonces:  nonces,
		logger:  logger,
		metrics: metrics,
	}
	t.setNodes(len(t.nodes))
	return t
}

// Root returns the root node.
func (t *HashTree) Root() *model.Node {
	return t.root
}

// Len returns the number of committed nodes, root included.
func (t *HashTree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Lookup returns the node registered under id.
func (t *HashTree) Lookup(id string) (*model.Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	return n, ok
}

// Parent resolves the parent of the node registered under id.
// It reports false for the root and for unknown ids.
func (t *HashTree) Parent(id string) (*model.Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok || n.IsRoot() {
		return nil, false
	}
	p, ok := t.nodes[n.ParentID]
	return p, ok
}

// Ancestors returns the parent chain of id, nearest parent first and the root last.
func (t *HashTree) Ancestors(id string) ([]*model.Node, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("ancestors of %q: %w", id, model.ErrNotFound)
	}

	var chain []*model.Node
	for cur := n; !cur.IsRoot() && len(chain) < len(t.nodes); {
		p, ok := t.nodes[cur.ParentID]
		if !ok {
			return chain, fmt.Errorf("parent %q of %q: %w", cur.ParentID, cur.ID, model.ErrNotFound)
		}
		chain = append(chain, p)
		cur = p
	}
	return chain, nil
}

// Children returns a snapshot of the immediate children of id in insertion order.
func (t *HashTree) Children(id string) ([]*model.Node, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("children of %q: %w", id, model.ErrNotFound)
	}
	out := make([]*model.Node, len(n.Children))
	copy(out, n.Children)
	return out, nil
}

// Insert commits a candidate under its parent and returns the committed node.
//
// The claimed candidate hash is not checked here; callers verify it with
// VerifyCandidateHash before committing. Zero timestamp and nonce are
// replaced with the current time and a fresh nonce.
func (t *HashTree) Insert(c model.CandidateBlock) (node *model.Node, err error) {
	started := time.Now()
	defer func() {
		t.observeInsert(err, started)
	}()

	if c.ID == "" {
		return nil, model.ErrEmptyID
	}
	if !c.Class.Valid() {
		return nil, fmt.Errorf("insert %q: class %q: %w", c.ID, string(c.Class), model.ErrInvalidClass)
	}
	if c.Class == model.Root {
		return nil, fmt.Errorf("insert %q: class root is reserved: %w", c.ID, model.ErrInvalidClass)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	parent, ok := t.nodes[c.ParentID]
	if !ok {
		return nil, fmt.Errorf("parent %q: %w", c.ParentID, model.ErrNotFound)
	}
	if _, dup := t.nodes[c.ID]; dup {
		return nil, fmt.Errorf("insert %q: %w", c.ID, model.ErrDuplicateID)
	}

	node = nodeFromCandidate(c)
	if node.Timestamp == 0 {
		node.Timestamp = clock.Millis(t.now())
	}
	if node.Nonce == 0 {
		node.Nonce = t.nonces.Uint32()
	}
	node.Hash = ComputeChainHash(node, parent.Hash)

	parent.Children = append(parent.Children, node)
	t.nodes[node.ID] = node
	t.setNodes(len(t.nodes))

	t.logger.Debug("node committed",
		zap.String("id", node.ID),
		zap.String("parent", parent.ID),
		zap.String("class", node.Class.String()),
		zap.String("hash", node.Hash),
	)
	return node, nil
}

func (t *HashTree) observeInsert(err error, started time.Time) {
	if t.metrics == nil {
		return
	}
	t.metrics.ObserveInsert(err, started)
}

func (t *HashTree) observeVerify(operation string, ok bool, started time.Time) {
	if t.metrics == nil {
		return
	}
	t.metrics.ObserveVerify(operation, ok, started)
}

func (t *HashTree) setNodes(count int) {
	if t.metrics == nil {
		return
	}
	t.metrics.SetNodes(count)
}

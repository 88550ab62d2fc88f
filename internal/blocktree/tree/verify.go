package tree

import (
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"go.uber.org/zap"
)

const (
	opVerifyCandidate = "verify_candidate"
	opVerifyAncestry  = "verify_ancestry"
	opVerifySubtree   = "verify_subtree"
)

// VerifyCandidateHash recomputes the candidate's chaining hash against the
// current hash of its parent and compares it with the claimed hash.
// It never mutates the tree; an unknown parent yields false.
func (t *HashTree) VerifyCandidateHash(c model.CandidateBlock) (ok bool) {
	started := time.Now()
	defer func() {
		t.observeVerify(opVerifyCandidate, ok, started)
	}()

	t.mu.RLock()
	defer t.mu.RUnlock()

	parent, found := t.nodes[c.ParentID]
	if !found {
		t.logger.Debug("candidate parent not found", zap.String("id", c.ID), zap.String("parent", c.ParentID))
		return false
	}
	return CandidateHash(c, parent.Hash) == c.Hash
}

// VerifyAncestryChain re-derives every hash from id up to the root.
func (t *HashTree) VerifyAncestryChain(id string) (ok bool) {
	started := time.Now()
	defer func() {
		t.observeVerify(opVerifyAncestry, ok, started)
	}()

	t.mu.RLock()
	defer t.mu.RUnlock()

	n, found := t.nodes[id]
	if !found {
		return false
	}
	return t.verifyAncestry(n)
}

// VerifySubtree checks the ancestry of id and then every node below it.
func (t *HashTree) VerifySubtree(id string) (ok bool) {
	started := time.Now()
	defer func() {
		t.observeVerify(opVerifySubtree, ok, started)
	}()

	t.mu.RLock()
	defer t.mu.RUnlock()

	n, found := t.nodes[id]
	if !found {
		return false
	}
	if !t.verifyAncestry(n) {
		return false
	}
	return t.verifyDescendants(n)
}

// verifyAncestry walks parent links up to the root. The walk is capped at
// the node count so a corrupted parent id cannot loop forever.
func (t *HashTree) verifyAncestry(n *model.Node) bool {
	for cur, steps := n, 0; steps <= len(t.nodes); steps++ {
		if cur.IsRoot() {
			if !t.matches(cur, "") {
				return false
			}
			return cur == t.root
		}
		parent, found := t.nodes[cur.ParentID]
		if !found {
			t.logger.Debug("ancestor missing", zap.String("id", cur.ID), zap.String("parent", cur.ParentID))
			return false
		}
		if !t.matches(cur, parent.Hash) {
			return false
		}
		cur = parent
	}
	return false
}

type frame struct {
	node       *model.Node
	parentHash string
}

// verifyDescendants runs a depth-first pass over the children of start.
// start itself has already been checked by verifyAncestry.
func (t *HashTree) verifyDescendants(start *model.Node) bool {
	stack := make([]frame, 0, len(start.Children))
	for _, c := range start.Children {
		if c.ParentID != start.ID {
			return false
		}
		stack = append(stack, frame{node: c, parentHash: start.Hash})
	}

	for visited := 0; len(stack) > 0; visited++ {
		if visited >= len(t.nodes) {
			return false
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !t.matches(f.node, f.parentHash) {
			return false
		}
		for _, c := range f.node.Children {
			if c.ParentID != f.node.ID {
				return false
			}
			stack = append(stack, frame{node: c, parentHash: f.node.Hash})
		}
	}
	return true
}

func (t *HashTree) matches(n *model.Node, parentHash string) bool {
	if ComputeChainHash(n, parentHash) == n.Hash {
		return true
	}
	t.logger.Debug("hash mismatch", zap.String("id", n.ID))
	return false
}

package model

// RootID is the well-known id of every tree's root node.
const RootID = "root"

// Node is a committed entry of the block tree.
//
// A node owns its children. The parent is referenced by id only and is
// resolved through the tree that owns both.
type Node struct {
	ID        string
	ParentID  string
	Index     int
	Timestamp int64 // milliseconds since epoch
	Nonce     uint32
	Name      string
	FilePath  string
	Class     NodeClass
	Hash      string

	Children []*Node
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.ParentID == ""
}

// CandidateBlock is an unvalidated node proposal. Hash is the proposer's claim.
type CandidateBlock struct {
	ID        string
	ParentID  string
	Index     int
	Timestamp int64
	Nonce     uint32
	Name      string
	FilePath  string
	Class     NodeClass
	Hash      string
}

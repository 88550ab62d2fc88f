// Package wire converts ledger requests and responses to and from JSON.
package wire

import (
	"fmt"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"github.com/goodnatureofminers/blocktree/pkg/safe"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mode selects what a request asks the ledger to do.
type Mode string

var (
	// ModeAdd proposes a candidate for commit.
	ModeAdd Mode = "add"
	// ModeCheck asks for a local verification of a candidate.
	ModeCheck Mode = "check"
	// ModeView asks for the resources around a node to be loaded.
	ModeView Mode = "view_node"
)

const defaultClass = "big"

// Request is a single ledger request as sent by clients and peers.
type Request struct {
	Mode      Mode   `json:"mode,omitempty"`
	ID        string `json:"id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
	Index     int64  `json:"index,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Rand      int64  `json:"rand,omitempty"`
	Name      string `json:"name,omitempty"`
	Ele       string `json:"ele,omitempty"`
	Class     string `json:"class,omitempty"`
	Hash      string `json:"hash,omitempty"`
}

// DecodeRequest parses a JSON object. A missing mode means add.
func DecodeRequest(data []byte) (Request, error) {
	var r Request
	if err := json.Unmarshal(data, &r); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if r.Mode == "" {
		r.Mode = ModeAdd
	}
	return r, nil
}

// EncodeRequest renders r as JSON.
func EncodeRequest(r Request) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return data, nil
}

// Candidate converts the request into a candidate block.
// A missing parent defaults to the root and a missing class to big;
// an unknown class is an error.
func (r Request) Candidate() (model.CandidateBlock, error) {
	parentID := r.ParentID
	if parentID == "" {
		parentID = model.RootID
	}

	classToken := r.Class
	if classToken == "" {
		classToken = defaultClass
	}
	class, err := model.ParseNodeClass(classToken)
	if err != nil {
		return model.CandidateBlock{}, err
	}

	index, err := safe.NonNegativeInt(r.Index)
	if err != nil {
		return model.CandidateBlock{}, fmt.Errorf("index: %w", err)
	}
	nonce, err := safe.Uint32(r.Rand)
	if err != nil {
		return model.CandidateBlock{}, fmt.Errorf("rand: %w", err)
	}

	return model.CandidateBlock{
		ID:        r.ID,
		ParentID:  parentID,
		Index:     index,
		Timestamp: r.Timestamp,
		Nonce:     nonce,
		Name:      r.Name,
		FilePath:  r.Ele,
		Class:     class,
		Hash:      r.Hash,
	}, nil
}

// NewCheckRequest builds the check request a peer needs to verify c.
func NewCheckRequest(c model.CandidateBlock) Request {
	return Request{
		Mode:      ModeCheck,
		ID:        c.ID,
		ParentID:  c.ParentID,
		Index:     int64(c.Index),
		Timestamp: c.Timestamp,
		Rand:      int64(c.Nonce),
		Name:      c.Name,
		Ele:       c.FilePath,
		Class:     c.Class.String(),
		Hash:      c.Hash,
	}
}

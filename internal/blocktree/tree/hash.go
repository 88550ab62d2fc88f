package tree

import (
	"bytes"
	"encoding/hex"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
)

// ComputeChainHash returns the chaining hash of n under parentHash.
//
// Fields are hashed in a fixed order (id, index, timestamp, nonce, name,
// file path, class, parent hash), each length-prefixed so that adjacent
// fields cannot trade bytes. The stored n.Hash is ignored.
func ComputeChainHash(n *model.Node, parentHash string) string {
	var buf bytes.Buffer
	writeField(&buf, n.ID)
	writeField(&buf, strconv.Itoa(n.Index))
	writeField(&buf, strconv.FormatInt(n.Timestamp, 10))
	writeField(&buf, strconv.FormatUint(uint64(n.Nonce), 10))
	writeField(&buf, n.Name)
	writeField(&buf, n.FilePath)
	writeField(&buf, n.Class.String())
	writeField(&buf, parentHash)

	return hex.EncodeToString(chainhash.DoubleHashB(buf.Bytes()))
}

// CandidateHash returns the chaining hash a candidate would carry under parentHash.
func CandidateHash(c model.CandidateBlock, parentHash string) string {
	return ComputeChainHash(nodeFromCandidate(c), parentHash)
}

func writeField(buf *bytes.Buffer, s string) {
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.WriteString(s)
	buf.WriteByte('|')
}

func nodeFromCandidate(c model.CandidateBlock) *model.Node {
	return &model.Node{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Index:     c.Index,
		Timestamp: c.Timestamp,
		Nonce:     c.Nonce,
		Name:      c.Name,
		FilePath:  c.FilePath,
		Class:     c.Class,
	}
}

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// WorkChunk is a contiguous range of candidate ordinals [Start, End),
// claimed atomically by exactly one worker.
type WorkChunk struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

func (c WorkChunk) Len() uint64 { return c.End - c.Start }

// SearchSession is the durable checkpoint of one attack against one
// document. Every ordinal below CompletedOffset is proven tried; ordinals
// in chunks that were claimed but not completed when a run died are
// retried on resume.
type SearchSession struct {
	ID       string     `json:"id"`
	Key      string     `json:"key"`
	Document string     `json:"document"`
	Spec     AttackSpec `json:"spec"`

	TotalCount      uint64 `json:"totalCount"`
	CompletedOffset uint64 `json:"completedOffset"`

	StartedAt      string  `json:"startedAt"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`

	FoundPassword *string `json:"foundPassword,omitempty"`
	FoundOffset   *uint64 `json:"foundOffset,omitempty"`

	Status SearchStatus `json:"status,omitempty"`
}

// SessionKey derives the stable identity of (document, attack). Resuming
// with a different descriptor gets a fresh key, so an old offset can never
// be applied to a different candidate ordering.
func SessionKey(document string, spec *AttackSpec) string {
	b, _ := json.Marshal(spec)
	h := sha256.New()
	h.Write([]byte(document))
	h.Write([]byte{0})
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

package domain

import "context"

// AttemptOracle is the decrypt/verify primitive. Try returns false for a
// wrong password and an error only for document-level failure, which is
// fatal to the whole run.
type AttemptOracle interface {
	Try(ctx context.Context, candidate string) (bool, error)
}

// SessionStore persists search checkpoints. Load returns (nil, nil) when
// no session exists for the key.
type SessionStore interface {
	Load(key string) (*SearchSession, error)
	Save(s *SearchSession) error
	Clear(key string) error
}

// WordSource exposes an index-stable view of a wordlist for the lifetime
// of a run.
type WordSource interface {
	Count() uint64
	LineAt(k uint64) (string, error)
}

type Emitter interface {
	Emit(event string, payload any)
}

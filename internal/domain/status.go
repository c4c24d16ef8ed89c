package domain

type SearchStatus string

const (
	StatusIdle      SearchStatus = "idle"
	StatusRunning   SearchStatus = "running"
	StatusPaused    SearchStatus = "paused"
	StatusSucceeded SearchStatus = "succeeded"
	StatusExhausted SearchStatus = "exhausted"
	StatusTimedOut  SearchStatus = "timed_out"
	StatusStopped   SearchStatus = "stopped"
	StatusError     SearchStatus = "error"
)

// Terminal reports whether a session in this status will not make further
// progress without being resumed from its checkpoint.
func (s SearchStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusExhausted, StatusTimedOut, StatusStopped, StatusError:
		return true
	}
	return false
}

package domain

// Event names emitted by the search coordinator.
const (
	EventSearchStarted  = "search_started"
	EventProgress       = "progress"
	EventChunkCompleted = "chunk_completed"
	EventFound          = "found"
	EventSearchDone     = "search_done"
)

type SearchStartedMsg struct {
	SessionID   string     `json:"sessionId"`
	Document    string     `json:"document"`
	Mode        AttackMode `json:"mode"`
	TotalCount  uint64     `json:"totalCount"`
	ResumedFrom uint64     `json:"resumedFrom"`
	Workers     int        `json:"workers"`
	StartedAt   string     `json:"startedAt"`
}

type ProgressMsg struct {
	SessionID  string `json:"sessionId"`
	Checked    uint64 `json:"checked"`
	Total      uint64 `json:"total"`
	Percent    int    `json:"percent"`
	RatePerSec int    `json:"ratePerSec"`
}

type ChunkCompletedMsg struct {
	SessionID string `json:"sessionId"`
	Offset    uint64 `json:"offset"`
}

type FoundMsg struct {
	SessionID string `json:"sessionId"`
	Password  string `json:"password"`
	Offset    uint64 `json:"offset"`
}

type SearchDoneMsg struct {
	SessionID      string       `json:"sessionId"`
	Status         SearchStatus `json:"status"`
	Checked        uint64       `json:"checked"`
	Total          uint64       `json:"total"`
	ElapsedSeconds float64      `json:"elapsedSeconds"`
	Error          string       `json:"error,omitempty"`
}

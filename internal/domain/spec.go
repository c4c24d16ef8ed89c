package domain

type AttackMode string

const (
	ModeWordlist     AttackMode = "wordlist"
	ModeNumericRange AttackMode = "range"
	ModeFixedNumeric AttackMode = "numeric"
	ModeDate         AttackMode = "date"
	ModeCustomQuery  AttackMode = "query"
	ModeMask         AttackMode = "mask"
	ModeHybrid       AttackMode = "hybrid"
	ModeCustomBrute  AttackMode = "brute"
)

// MaskSegment is one run of a mask: a concrete alphabet and a length range.
type MaskSegment struct {
	Charset string `json:"charset"`
	MinLen  int    `json:"minLen"`
	MaxLen  int    `json:"maxLen"`
}

// AttackSpec is a tagged descriptor of one candidate space. Mode selects
// which fields are meaningful; the rest stay zero. The struct is flat so a
// session file can round-trip any attack, including nested hybrids.
type AttackSpec struct {
	Mode AttackMode `json:"mode"`

	// wordlist
	WordlistPath string `json:"wordlistPath,omitempty"`

	// range, query
	Min uint64 `json:"min,omitempty"`
	Max uint64 `json:"max,omitempty"`

	// numeric
	Length int `json:"length,omitempty"`

	// date
	YearStart  int    `json:"yearStart,omitempty"`
	YearEnd    int    `json:"yearEnd,omitempty"`
	DateLayout string `json:"dateLayout,omitempty"`
	Separator  string `json:"separator,omitempty"`

	// query
	Prefix  string `json:"prefix,omitempty"`
	Suffix  string `json:"suffix,omitempty"`
	ZeroPad bool   `json:"zeroPad,omitempty"`

	// mask
	Segments []MaskSegment `json:"segments,omitempty"`

	// brute
	Charset string `json:"charset,omitempty"`
	MinLen  int    `json:"minLen,omitempty"`
	MaxLen  int    `json:"maxLen,omitempty"`

	// hybrid
	Left  *AttackSpec `json:"left,omitempty"`
	Right *AttackSpec `json:"right,omitempty"`
}

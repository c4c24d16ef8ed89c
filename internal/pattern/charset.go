package pattern

// Concrete alphabets behind the symbolic mask classes.
const (
	Lowercase  = "abcdefghijklmnopqrstuvwxyz"
	Uppercase  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits     = "0123456789"
	Symbols    = "!@#$%^&*()-_+=~`[]{}|\\:;\"'<>,.?/"
	Whitespace = " "
	Hex        = "0123456789abcdef"
)

// CharsetMap maps a mask class letter to its alphabet. The order of each
// alphabet is part of the enumeration contract: changing it reorders every
// mask's candidate space.
var CharsetMap = map[byte]string{
	'w': Lowercase,
	'W': Uppercase,
	'd': Digits,
	's': Symbols,
	'b': Whitespace,
	'h': Hex,
	'a': Lowercase + Uppercase + Digits + Symbols + Whitespace,
}

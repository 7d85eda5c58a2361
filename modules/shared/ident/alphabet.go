package ident

// Character codes are 6-bit and 1-based: code 0 is the terminator that marks
// the end of a packed identifier, letters take 1..26, digits 27..36, hyphen
// 37 and underscore 38 (actor identifiers only).
const (
	bitsPerChar = 6
	charMask    = 0x3F

	codeHyphen     = 37
	codeUnderscore = 38

	letterOffset = 'a' - 1
	upperOffset  = 'A' - 1
	digitOffset  = '0' - 1 - 26
)

// lowerCode maps a lower-case letter, digit or hyphen to its character code.
func lowerCode(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r) - letterOffset, true
	case r >= '0' && r <= '9':
		return byte(r) - digitOffset, true
	case r == '-':
		return codeHyphen, true
	}
	return 0, false
}

// codeChar maps a character code back to its byte. upper selects the
// upper-case form of letter codes and is ignored for everything else.
// The terminator and out-of-alphabet codes map to 0.
func codeChar(code byte, upper bool) byte {
	switch {
	case code >= 1 && code <= 26:
		if upper {
			return code + upperOffset
		}
		return code + letterOffset
	case code >= 27 && code <= 36:
		return code + digitOffset
	case code == codeHyphen:
		return '-'
	case code == codeUnderscore:
		return '_'
	}
	return 0
}

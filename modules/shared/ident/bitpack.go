package ident

// packCode ORs the 6-bit code of the character at index into buf. The packed
// region begins offset bytes into buf. Codes are laid out LSB-first, six bits
// per character, so a code whose bit offset within its byte exceeds 2
// straddles into the following byte. buf must already be zeroed.
func packCode(buf []byte, offset, index int, code byte) {
	bit := index * bitsPerChar
	byteIndex := bit/8 + offset
	bitOffset := bit % 8

	buf[byteIndex] |= code << bitOffset
	if bitOffset > 2 {
		buf[byteIndex+1] |= code >> (8 - bitOffset)
	}
}

// unpackCode reads the character code at index, mirroring packCode.
func unpackCode(buf []byte, offset, index int) byte {
	bit := index * bitsPerChar
	byteIndex := bit/8 + offset
	bitOffset := bit % 8

	code := buf[byteIndex] >> bitOffset
	if bitOffset > 2 {
		code |= buf[byteIndex+1] << (8 - bitOffset)
	}
	return code & charMask
}

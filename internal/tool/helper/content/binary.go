package content

// sniffSize is how many leading bytes are scanned for NUL bytes, the same
// window git uses.
const sniffSize = 8000

// IsBinary reports whether data looks like binary output: a NUL byte in the
// first sniffSize bytes. UTF-16 and UTF-32 byte order marks count as text.
func IsBinary(data []byte) bool {
	if hasWideBOM(data) {
		return false
	}
	n := min(len(data), sniffSize)
	for i := range n {
		if data[i] == 0 {
			return true
		}
	}
	return false
}

func hasWideBOM(data []byte) bool {
	if len(data) >= 4 &&
		((data[0] == 0xFF && data[1] == 0xFE && data[2] == 0x00 && data[3] == 0x00) ||
			(data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF)) {
		return true
	}
	return len(data) >= 2 &&
		((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF))
}

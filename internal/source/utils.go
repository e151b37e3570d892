package source

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText strips a UTF-8 BOM and converts BOM-marked UTF-16 input to UTF-8.
// Content without a BOM is returned unchanged.
func decodeText(content []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		flags = FileHadBOM
	case bytes.HasPrefix(content, bomUTF16LE), bytes.HasPrefix(content, bomUTF16BE):
		flags = FileHadBOM | FileDecodedUTF16
	default:
		return content, 0, nil
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), content)
	if err != nil {
		return nil, 0, fmt.Errorf("decode source text: %w", err)
	}
	return out, flags, nil
}

// checkIndexable reports content too large for uint32 line offsets.
func checkIndexable(size int) error {
	if _, err := safecast.Conv[uint32](size); err != nil {
		return fmt.Errorf("%w: %d bytes exceeds the line index range", ErrFileUnreadable, size)
	}
	return nil
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		out = append(out, off)
	}
	return out
}

package extractor

import (
	"io"
	"strings"
)

// TextExtractor reads plain text. It works in chunks so mixed or partially
// binary files do not blow up memory, and sanitizes control bytes that would
// otherwise confuse downstream regex matching.
type TextExtractor struct{}

func (e *TextExtractor) Extract(reader io.Reader) (string, error) {
	const bufSize = 64 * 1024

	var out strings.Builder
	buf := make([]byte, bufSize)

	for {
		n, err := reader.Read(buf)
		if n > 0 {
			out.Write(sanitizeBytes(buf[:n]))
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
	}

	return out.String(), nil
}

// sanitizeBytes replaces non-printable characters with spaces. Bytes above
// 127 are kept; they are likely UTF-8 continuation bytes, and real binary
// garbage lives mostly in the control range.
func sanitizeBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		if (b >= 32 && b <= 126) || b == 9 || b == 10 || b == 13 || b > 127 {
			out[i] = b
		} else {
			out[i] = ' '
		}
	}
	return out
}

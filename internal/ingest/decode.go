package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidateEncodings lists decoders in priority order. Government CSV exports
// in Korea are commonly saved as CP949/EUC-KR; the x/text EUC-KR decoder
// covers the CP949 extension. Latin-1 never fails, so it stays last.
var candidateEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", encoding.Nop},
	{"euc-kr", korean.EUCKR},
	{"latin-1", charmap.ISO8859_1},
}

// DecodeText converts raw CSV bytes to a UTF-8 string, trying each candidate
// encoding in order and returning the name of the one that was used.
func DecodeText(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	for _, cand := range candidateEncodings {
		if cand.enc == encoding.Nop {
			if utf8.Valid(data) {
				return string(data), cand.name, nil
			}
			continue
		}
		decoded, _, err := transform.Bytes(cand.enc.NewDecoder(), data)
		if err != nil || len(decoded) == 0 {
			continue
		}
		if !utf8.Valid(decoded) {
			continue
		}
		if strings.ContainsRune(string(decoded), utf8.RuneError) {
			continue
		}
		return string(decoded), cand.name, nil
	}
	return "", "", fmt.Errorf("decode text: no candidate encoding produced valid UTF-8 (tried %s)", encodingNames())
}

func encodingNames() string {
	names := make([]string, len(candidateEncodings))
	for i, c := range candidateEncodings {
		names[i] = c.name
	}
	return strings.Join(names, ", ")
}

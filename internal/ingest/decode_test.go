package ingest

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func encodeEUCKR(t *testing.T, s string) []byte {
	t.Helper()
	b, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("encode euc-kr fixture: %v", err)
	}
	return b
}

func TestDecodeTextUTF8(t *testing.T) {
	text, enc, err := DecodeText([]byte("역명,승차총승객수\n서울역,1000\n"))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", enc)
	}
	if !strings.Contains(text, "서울역") {
		t.Errorf("decoded text missing station name: %q", text)
	}
}

func TestDecodeTextStripsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n1,2\n")...)
	text, enc, err := DecodeText(raw)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if enc != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", enc)
	}
	if text[0] != 'a' {
		t.Errorf("BOM not stripped, text starts with %q", text[0])
	}
}

func TestDecodeTextEUCKR(t *testing.T) {
	raw := encodeEUCKR(t, "노선명,역명\n2호선,강남\n")
	text, enc, err := DecodeText(raw)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if enc != "euc-kr" {
		t.Errorf("encoding = %q, want euc-kr", enc)
	}
	if !strings.Contains(text, "강남") {
		t.Errorf("decoded text missing 강남: %q", text)
	}
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	// 0xE9 followed by 0x80 is invalid UTF-8 and an invalid CP949 pair, so
	// only the Latin-1 candidate accepts it.
	raw := []byte{'c', 'a', 'f', 0xE9, ',', 0x80}
	text, enc, err := DecodeText(raw)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if enc != "latin-1" {
		t.Errorf("encoding = %q, want latin-1", enc)
	}
	if !strings.HasPrefix(text, "caf") {
		t.Errorf("decoded text = %q", text)
	}
}

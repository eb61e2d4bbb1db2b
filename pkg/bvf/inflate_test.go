package bvf

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func zlibBytes(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte(body))
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close failed: %v", err)
	}
	return buf.Bytes()
}

func TestCheckHeader(t *testing.T) {
	valid := [][2]byte{{0x78, 0x9C}, {0x78, 0x01}, {0x78, 0xDA}, {0x78, 0x5E}}
	for _, h := range valid {
		if err := CheckHeader(h[0], h[1]); err != nil {
			t.Errorf("expected %#x %#x to be accepted, got %v", h[0], h[1], err)
		}
	}

	invalid := [][2]byte{{0x78, 0x00}, {0x78, 0x9D}, {0x00, 0x01}}
	for _, h := range invalid {
		err := CheckHeader(h[0], h[1])
		if !errors.Is(err, ErrInvalidCompressionHeader) {
			t.Errorf("expected %#x %#x to be rejected, got %v", h[0], h[1], err)
		}
	}
}

func TestInflate(t *testing.T) {
	body := "1\n1\nAB\nCD\nEF\n"
	raw := base64.StdEncoding.EncodeToString(zlibBytes(t, body))

	out, err := Inflate([]byte(raw))
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if string(out) != body {
		t.Errorf("expected %q, got %q", body, out)
	}
}

func TestInflate_IgnoresLineBreaks(t *testing.T) {
	body := strings.Repeat("0123456789abcdef\n", 40)
	raw := base64.StdEncoding.EncodeToString(zlibBytes(t, body))

	var wrapped strings.Builder
	for len(raw) > 20 {
		wrapped.WriteString(raw[:20])
		wrapped.WriteString("\r\n")
		raw = raw[20:]
	}
	wrapped.WriteString(raw)
	wrapped.WriteString("\n")

	out, err := Inflate([]byte(wrapped.String()))
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if string(out) != body {
		t.Error("inflated body does not match")
	}
}

func TestInflate_RejectsBadHeader(t *testing.T) {
	data := zlibBytes(t, "1\n")
	data[1] = 0x00
	_, err := Inflate([]byte(base64.StdEncoding.EncodeToString(data)))
	if !errors.Is(err, ErrInvalidCompressionHeader) {
		t.Errorf("expected ErrInvalidCompressionHeader, got %v", err)
	}
}

func TestInflate_ChecksumMismatch(t *testing.T) {
	data := zlibBytes(t, "1\n1\na\nb\nc\n")
	data[len(data)-1] ^= 0xFF
	_, err := Inflate([]byte(base64.StdEncoding.EncodeToString(data)))
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestInflate_CorruptPayload(t *testing.T) {
	inputs := map[string][]byte{
		"not base64":  []byte("!!!not-base64!!!"),
		"short":       []byte(base64.StdEncoding.EncodeToString([]byte{0x78, 0x9C, 0x01})),
		"bad deflate": []byte(base64.StdEncoding.EncodeToString([]byte{0x78, 0x9C, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0})),
	}
	for name, in := range inputs {
		_, err := Inflate(in)
		if !errors.Is(err, ErrCorruptPayload) {
			t.Errorf("%s: expected ErrCorruptPayload, got %v", name, err)
		}
	}
}

func TestPrepare_UncompressedKeepsStreaming(t *testing.T) {
	file := NewFileSource(strings.NewReader("a\nb\n"))
	src, err := Prepare(file, false)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if src != LineSource(file) {
		t.Error("expected the live file source to be returned")
	}
}

func TestPrepare_CompressedClosesFile(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString(zlibBytes(t, "x\ny\n"))
	r := &closeRecorder{Reader: strings.NewReader(raw + "\n")}
	src, err := Prepare(NewFileSource(r), true)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if _, ok := src.(*BufferSource); !ok {
		t.Errorf("expected *BufferSource, got %T", src)
	}
	if r.closed != 1 {
		t.Errorf("expected file to be closed after draining, got %d closes", r.closed)
	}
}

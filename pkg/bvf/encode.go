package bvf

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
)

// base64LineWidth wraps the encoded payload so the file stays line-oriented.
const base64LineWidth = 76

// Encode writes h followed by frames. Compressed output stores linesPerFrame as the
// first inflated line. For uncompressed output every frame must have exactly
// h.Height lines. h.FrameCount is taken from len(frames).
func Encode(w io.Writer, h Header, linesPerFrame int, frames []Frame) error {
	h.FrameCount = uint(len(frames))
	for i, f := range frames {
		if len(f.FG) != len(f.Text) || len(f.BG) != len(f.Text) {
			return fmt.Errorf("bvf: frame %d has mismatched block lengths", i+1)
		}
		if !h.Compressed && len(f.Text) != int(h.Height) {
			return fmt.Errorf("bvf: frame %d has %d lines, want %d", i+1, len(f.Text), h.Height)
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(h.String()); err != nil {
		return err
	}

	if !h.Compressed {
		for _, f := range frames {
			writeBlocks(bw, f)
		}
		return bw.Flush()
	}

	var body bytes.Buffer
	body.WriteString(strconv.Itoa(linesPerFrame))
	body.WriteByte('\n')
	for _, f := range frames {
		body.WriteString(strconv.Itoa(f.Lines()))
		body.WriteByte('\n')
		writeBlocks(&body, f)
	}

	var packed bytes.Buffer
	zw := zlib.NewWriter(&packed)
	if _, err := zw.Write(body.Bytes()); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(packed.Bytes())
	for len(encoded) > base64LineWidth {
		bw.WriteString(encoded[:base64LineWidth])
		bw.WriteByte('\n')
		encoded = encoded[base64LineWidth:]
	}
	if encoded != "" {
		bw.WriteString(encoded)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

type lineWriter interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

func writeBlocks(w lineWriter, f Frame) {
	for _, block := range [][]string{f.Text, f.FG, f.BG} {
		for _, line := range block {
			w.WriteString(line)
			w.WriteByte('\n')
		}
	}
}

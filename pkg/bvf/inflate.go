package bvf

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/adler32"
	"io"
)

const (
	zlibHeaderSize  = 2
	zlibTrailerSize = 4
	zlibPresetDict  = 0x20
)

// Prepare returns the line source frames are decoded from. Uncompressed parts keep
// streaming from src. Compressed parts drain and close src, then decode the payload
// into a BufferSource.
func Prepare(src *FileSource, compressed bool) (LineSource, error) {
	if !compressed {
		return src, nil
	}
	raw, err := src.Remaining()
	closeErr := src.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	body, err := Inflate(raw)
	if err != nil {
		return nil, err
	}
	return NewBufferSource(body), nil
}

// Inflate decodes a base64 zlib stream: it validates the two header bytes, inflates the
// deflate body, and checks the body against the big-endian Adler-32 trailer.
// Line terminators inside the base64 text are ignored.
func Inflate(raw []byte) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return nil, &DecodeError{Kind: CorruptPayload, Err: err}
	}
	if len(data) < zlibHeaderSize {
		return nil, &DecodeError{Kind: InvalidCompressionHeader}
	}
	if err := CheckHeader(data[0], data[1]); err != nil {
		return nil, err
	}
	if data[1]&zlibPresetDict != 0 {
		return nil, &DecodeError{Kind: CorruptPayload, Err: errPresetDict}
	}
	if len(data) < zlibHeaderSize+zlibTrailerSize {
		return nil, &DecodeError{Kind: CorruptPayload, Err: io.ErrUnexpectedEOF}
	}

	body := data[zlibHeaderSize : len(data)-zlibTrailerSize]
	fr := flate.NewReader(bytes.NewReader(body))
	defer fr.Close()

	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, &DecodeError{Kind: CorruptPayload, Err: err}
	}

	want := binary.BigEndian.Uint32(data[len(data)-zlibTrailerSize:])
	if got := adler32.Checksum(out); got != want {
		return nil, &DecodeError{Kind: ChecksumMismatch}
	}
	return out, nil
}

// CheckHeader validates the zlib check bits: the big-endian value of the two
// header bytes must be a multiple of 31.
func CheckHeader(cmf, flg byte) error {
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return &DecodeError{Kind: InvalidCompressionHeader}
	}
	return nil
}

var errPresetDict = errors.New("preset dictionary not supported")

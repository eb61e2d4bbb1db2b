package bvf

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfData is returned by a line source when no more lines are available.
	ErrEndOfData = errors.New("bvf: end of data")

	// ErrMalformedDimensions is matched by header errors on the "<w> <h> <fps>" line.
	ErrMalformedDimensions = errors.New("bvf: malformed dimensions")

	// ErrMalformedFrameCount is matched by header errors on the frame count line.
	ErrMalformedFrameCount = errors.New("bvf: malformed frame count")

	// ErrInvalidCompressionHeader is matched when the zlib header fails its check bits.
	ErrInvalidCompressionHeader = errors.New("bvf: invalid compression header")

	// ErrCorruptPayload is matched when the compressed payload cannot be decoded.
	ErrCorruptPayload = errors.New("bvf: corrupt compressed payload")

	// ErrChecksumMismatch is matched when the inflated body does not match its Adler-32 trailer.
	ErrChecksumMismatch = errors.New("bvf: checksum mismatch")

	// ErrInvalidLineCount is matched when a lines-per-frame value cannot be used.
	ErrInvalidLineCount = errors.New("bvf: invalid line count")

	// ErrTruncatedFrame is matched when the data ends in the middle of a frame.
	ErrTruncatedFrame = errors.New("bvf: truncated frame")
)

// ParseErrorKind identifies which header field failed to parse.
type ParseErrorKind int

const (
	MalformedDimensions ParseErrorKind = iota
	MalformedFrameCount
)

func (k ParseErrorKind) sentinel() error {
	if k == MalformedFrameCount {
		return ErrMalformedFrameCount
	}
	return ErrMalformedDimensions
}

// ParseError reports a malformed header line.
type ParseError struct {
	Kind ParseErrorKind
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Kind.sentinel(), e.Line)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is lets errors.Is match the sentinel for the error kind.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeErrorKind identifies the decode failure.
type DecodeErrorKind int

const (
	InvalidCompressionHeader DecodeErrorKind = iota
	CorruptPayload
	ChecksumMismatch
	InvalidLineCount
	TruncatedFrame
)

func (k DecodeErrorKind) sentinel() error {
	switch k {
	case InvalidCompressionHeader:
		return ErrInvalidCompressionHeader
	case CorruptPayload:
		return ErrCorruptPayload
	case ChecksumMismatch:
		return ErrChecksumMismatch
	case InvalidLineCount:
		return ErrInvalidLineCount
	default:
		return ErrTruncatedFrame
	}
}

// DecodeError reports a failure while unwrapping the payload or decoding a frame.
// Block and Frame are set for TruncatedFrame errors.
type DecodeError struct {
	Kind  DecodeErrorKind
	Block string
	Frame int
	Err   error
}

func (e *DecodeError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Kind == TruncatedFrame {
		msg = fmt.Sprintf("%s: frame %d, %s block", msg, e.Frame, e.Block)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is lets errors.Is match the sentinel for the error kind.
func (e *DecodeError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

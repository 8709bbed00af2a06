package models

import (
	"fmt"
	"strings"
)

// Codec selects the HEVC backend bpgenc encodes with.
type Codec string

const (
	CodecX265  Codec = "x265"
	CodecJCTVC Codec = "jctvc"
)

// ParseCodec maps a user-supplied codec name onto a Codec.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x265":
		return CodecX265, nil
	case "jctvc":
		return CodecJCTVC, nil
	default:
		return "", fmt.Errorf("unknown codec %q (choose x265 or jctvc)", s)
	}
}

// Task describes one conversion: everything a worker needs to invoke the
// encoder without consulting shared state. Tasks are built once by the
// discoverer and never mutated.
type Task struct {
	EncoderPath string
	InputPath   string
	OutputPath  string
	BitDepth    int
	Codec       Codec
}

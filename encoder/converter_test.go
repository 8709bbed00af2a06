package encoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"bpgbatch/models"
)

// halfSizeEncoder mimics bpgenc by writing an output file half the size of
// the final positional argument to the path given after -o.
const halfSizeEncoder = `#!/bin/sh
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-o" ]; then out="$a"; fi
  prev="$a"
  in="$a"
done
size=$(wc -c < "$in")
head -c $((size / 2)) /dev/zero > "$out"
`

const failingEncoder = `#!/bin/sh
echo "bit depth not supported" >&2
exit 3
`

const silentNoOutputEncoder = `#!/bin/sh
exit 0
`

func writeFakeEncoder(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake encoder tests use shell scripts")
	}
	path := filepath.Join(t.TempDir(), "bpgenc")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake encoder: %v", err)
	}
	return path
}

func writeInput(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func newTask(t *testing.T, encoderPath string, size int) models.Task {
	t.Helper()
	dir := t.TempDir()
	return models.Task{
		EncoderPath: encoderPath,
		InputPath:   writeInput(t, dir, "in.png", size),
		OutputPath:  filepath.Join(dir, "in.bpg"),
		BitDepth:    10,
		Codec:       models.CodecX265,
	}
}

func TestConvertSuccess(t *testing.T) {
	conv := NewConverter(zaptest.NewLogger(t))
	task := newTask(t, writeFakeEncoder(t, halfSizeEncoder), 10240)

	r := conv.Convert(context.Background(), task)

	if r.Err != nil {
		t.Fatalf("Convert failed: %v", r.Err)
	}
	if r.InputSize != 10240 {
		t.Errorf("InputSize = %d, want 10240", r.InputSize)
	}
	if r.OutputSize != 5120 {
		t.Errorf("OutputSize = %d, want 5120", r.OutputSize)
	}
	if r.Ratio != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", r.Ratio)
	}
	if r.BytesSaved != 5120 {
		t.Errorf("BytesSaved = %d, want 5120", r.BytesSaved)
	}
	if r.Elapsed <= 0 {
		t.Error("Elapsed not populated")
	}
	if !r.Succeeded() {
		t.Error("Succeeded() = false")
	}
}

func TestConvertEncoderFailure(t *testing.T) {
	conv := NewConverter(zaptest.NewLogger(t))
	task := newTask(t, writeFakeEncoder(t, failingEncoder), 4096)

	r := conv.Convert(context.Background(), task)

	if r.Err == nil {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(r.Err.Error(), "bit depth not supported") {
		t.Errorf("Err = %v, want captured stderr in message", r.Err)
	}
	if r.OutputSize != 0 {
		t.Errorf("OutputSize = %d, want 0", r.OutputSize)
	}
	if r.BytesSaved != -4096 {
		t.Errorf("BytesSaved = %d, want -4096", r.BytesSaved)
	}
	if r.Ratio < models.MaxPlausibleRatio {
		t.Errorf("Ratio = %v, want sentinel", r.Ratio)
	}
	if r.Elapsed <= 0 {
		t.Error("Elapsed not populated on failure")
	}
}

func TestConvertMissingOutputIsFailure(t *testing.T) {
	conv := NewConverter(zaptest.NewLogger(t))
	task := newTask(t, writeFakeEncoder(t, silentNoOutputEncoder), 2048)

	r := conv.Convert(context.Background(), task)

	if r.Err == nil {
		t.Fatal("expected failure when encoder writes no output")
	}
	if r.Succeeded() {
		t.Error("Succeeded() = true for missing output")
	}
}

func TestConvertMissingInputIsFailure(t *testing.T) {
	conv := NewConverter(zaptest.NewLogger(t))
	dir := t.TempDir()
	task := models.Task{
		EncoderPath: writeFakeEncoder(t, halfSizeEncoder),
		InputPath:   filepath.Join(dir, "gone.png"),
		OutputPath:  filepath.Join(dir, "gone.bpg"),
		BitDepth:    10,
		Codec:       models.CodecX265,
	}

	r := conv.Convert(context.Background(), task)

	if r.Err == nil {
		t.Fatal("expected failure for missing input")
	}
	if !errors.Is(r.Err, os.ErrNotExist) {
		t.Errorf("Err = %v, want wrapped not-exist", r.Err)
	}
	if r.InputSize != 0 || r.BytesSaved != 0 {
		t.Errorf("sizes = %d/%d, want 0/0 when input unreadable", r.InputSize, r.BytesSaved)
	}
}

func TestBuildArgs(t *testing.T) {
	task := models.Task{
		EncoderPath: "/usr/bin/bpgenc",
		InputPath:   "/in/a.png",
		OutputPath:  "/out/a.bpg",
		BitDepth:    12,
		Codec:       models.CodecJCTVC,
	}

	args := buildArgs(task)
	want := []string{"-b", "12", "-o", "/out/a.bpg", "-c", "ycbcr", "-f", "444", "-m", "9", "-e", "jctvc", "/in/a.png"}

	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
	if args[len(args)-1] != task.InputPath {
		t.Error("input path must be the final positional argument")
	}
}

func TestBuildArgsDefaultCodec(t *testing.T) {
	args := buildArgs(models.Task{BitDepth: 10, Codec: models.CodecX265})
	found := false
	for i, a := range args {
		if a == "-e" && i+1 < len(args) && args[i+1] == "x265" {
			found = true
		}
	}
	if !found {
		t.Errorf("args = %v, want -e x265", args)
	}
}

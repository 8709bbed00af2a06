package encoder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrEncoderNotFound is returned when no bpgenc candidate exists.
var ErrEncoderNotFound = errors.New("bpg encoder not found")

// ExecutableName returns the platform-specific bpgenc filename.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "bpgenc.exe"
	}
	return "bpgenc"
}

// Locate resolves the bpgenc executable. Search order: the explicit
// override if one was configured, PATH, then a binary sitting next to the
// orchestrator's own executable. First hit wins.
func Locate(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%w: configured encoder path %s does not exist", ErrEncoderNotFound, override)
		}
		return override, nil
	}

	name := ExecutableName()

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: place %s on PATH or next to this program", ErrEncoderNotFound, name)
}

// Package discovery walks the input tree and turns matching images into
// conversion tasks with mirrored output paths.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bpgbatch/config"
	"bpgbatch/models"
)

var (
	ErrInputNotFound    = errors.New("input directory not found")
	ErrOutputCollision  = errors.New("output path collision")
	ErrOutputNotCreated = errors.New("cannot create output directory")
)

// imageExtensions are the accepted inputs (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

const outputExtension = ".bpg"

// CheckInputRoot verifies the input root exists and is a directory. The
// orchestrator calls this before touching the encoder locator so a missing
// input fails fast.
func CheckInputRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInputNotFound, root)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInputNotFound, root)
	}
	return nil
}

// Discover walks cfg.InputRoot recursively and returns one Task per
// PNG/JPG/JPEG file (extension matched case-insensitively). Each output
// path mirrors the input's relative path under cfg.OutputRoot with the
// extension replaced by .bpg; output directories are created as needed.
// Two inputs mapping to the same output abort discovery with
// ErrOutputCollision. An empty result with a nil error means nothing
// matched; the caller decides whether that ends the run.
func Discover(encoderPath string, cfg config.Config) ([]models.Task, error) {
	if err := CheckInputRoot(cfg.InputRoot); err != nil {
		return nil, err
	}

	inputRoot, err := filepath.Abs(cfg.InputRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve input root: %w", err)
	}
	outputRoot, err := filepath.Abs(cfg.OutputRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve output root: %w", err)
	}

	var tasks []models.Task
	owners := make(map[string]string) // output path → input that claimed it

	err = filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Do not descend into the output tree when it nests
			// inside the input tree.
			if path != inputRoot && path == outputRoot {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		rel, err := filepath.Rel(inputRoot, path)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outputRoot, strings.TrimSuffix(rel, filepath.Ext(rel))+outputExtension)

		if prev, claimed := owners[outPath]; claimed {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrOutputCollision, prev, path, outPath)
		}
		owners[outPath] = path

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputNotCreated, err)
		}

		tasks = append(tasks, models.Task{
			EncoderPath: encoderPath,
			InputPath:   path,
			OutputPath:  outPath,
			BitDepth:    cfg.BitDepth,
			Codec:       cfg.Codec,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

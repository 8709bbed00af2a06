package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"bpgbatch/models"
)

// Config is the immutable run configuration. It is built once in main and
// passed down; nothing below the entrypoint reads environment or flags.
type Config struct {
	InputRoot       string
	OutputRoot      string
	BitDepth        int
	Codec           models.Codec
	Workers         int
	EncoderOverride string
	NoColor         bool
}

// Default returns the compiled-in defaults: convert the current directory
// into a nested "bpg" tree, 10-bit, x265, one worker per CPU.
func Default() Config {
	return Config{
		InputRoot:  ".",
		OutputRoot: "bpg",
		BitDepth:   10,
		Codec:      models.CodecX265,
		Workers:    runtime.NumCPU(),
	}
}

// fileConfig mirrors Config for the optional YAML file.
type fileConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	BitDepth int    `yaml:"bit_depth"`
	Codec    string `yaml:"codec"`
	Workers  int    `yaml:"workers"`
	Encoder  string `yaml:"encoder"`
	NoColor  bool   `yaml:"no_color"`
}

// Load builds a Config from args. Precedence, lowest to highest:
// compiled defaults, YAML file (-config or BPG_CONFIG), BPG_* environment
// variables, explicit flags.
func Load(args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("bpgconv", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		configPath = fs.String("config", getEnv("BPG_CONFIG", ""), "Optional YAML config file")
		input      = fs.String("input", cfg.InputRoot, "Input directory scanned recursively for PNG/JPG")
		outDir     = fs.String("output", cfg.OutputRoot, "Output directory mirroring the input tree")
		bitDepth   = fs.Int("bit-depth", cfg.BitDepth, "Encoder bit depth (8-12)")
		codec      = fs.String("codec", string(cfg.Codec), "x265 (default, faster) or jctvc (slower, higher quality)")
		workers    = fs.Int("workers", cfg.Workers, "Number of parallel encoder processes")
		encoder    = fs.String("encoder", "", "Explicit path to the bpgenc executable")
		noColor    = fs.Bool("no-color", false, "Disable colored output")
	)

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := cfg.applyFile(*configPath); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()

	// Flags the user actually passed win over file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputRoot = *input
		case "output":
			cfg.OutputRoot = *outDir
		case "bit-depth":
			cfg.BitDepth = *bitDepth
		case "codec":
			cfg.Codec = models.Codec(*codec)
		case "workers":
			cfg.Workers = *workers
		case "encoder":
			cfg.EncoderOverride = *encoder
		case "no-color":
			cfg.NoColor = *noColor
		}
	})

	parsed, err := models.ParseCodec(string(cfg.Codec))
	if err != nil {
		return cfg, err
	}
	cfg.Codec = parsed

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Input != "" {
		c.InputRoot = fc.Input
	}
	if fc.Output != "" {
		c.OutputRoot = fc.Output
	}
	if fc.BitDepth != 0 {
		c.BitDepth = fc.BitDepth
	}
	if fc.Codec != "" {
		c.Codec = models.Codec(fc.Codec)
	}
	if fc.Workers != 0 {
		c.Workers = fc.Workers
	}
	if fc.Encoder != "" {
		c.EncoderOverride = fc.Encoder
	}
	if fc.NoColor {
		c.NoColor = true
	}
	return nil
}

func (c *Config) applyEnv() {
	c.InputRoot = getEnv("BPG_INPUT", c.InputRoot)
	c.OutputRoot = getEnv("BPG_OUTPUT", c.OutputRoot)
	c.BitDepth = getEnvAsInt("BPG_BIT_DEPTH", c.BitDepth)
	c.Codec = models.Codec(getEnv("BPG_CODEC", string(c.Codec)))
	c.Workers = getEnvAsInt("BPG_WORKERS", c.Workers)
	c.EncoderOverride = getEnv("BPG_ENCODER", c.EncoderOverride)
	if os.Getenv("NO_COLOR") != "" {
		c.NoColor = true
	}
}

// Validate rejects configurations the run cannot start with.
func (c Config) Validate() error {
	if c.InputRoot == "" {
		return fmt.Errorf("input directory must not be empty")
	}
	if c.OutputRoot == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.BitDepth < 8 || c.BitDepth > 12 {
		return fmt.Errorf("bit depth %d out of range (8-12)", c.BitDepth)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("worker count %d must be positive", c.Workers)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

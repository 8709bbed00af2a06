// Command genimage writes synthetic PNG and JPEG test images for trying
// out the converter without a real photo set.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"bpgbatch/fixtures"
)

func main() {
	out := flag.String("out", ".", "Directory to write test images into")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 600, "Image height in pixels")
	quality := flag.Int("quality", 95, "JPEG quality")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Fatal("cannot create output directory", zap.String("dir", *out), zap.Error(err))
	}

	pngPath := filepath.Join(*out, "test_input.png")
	if err := fixtures.WritePNG(pngPath, *width, *height); err != nil {
		logger.Fatal("write PNG failed", zap.Error(err))
	}
	logger.Info("created", zap.String("path", pngPath))

	jpgPath := filepath.Join(*out, "test_input.jpg")
	if err := fixtures.WriteJPEG(jpgPath, *width, *height, *quality); err != nil {
		logger.Fatal("write JPEG failed", zap.Error(err))
	}
	logger.Info("created", zap.String("path", jpgPath))
}

package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnegrau/qrlens"
	"github.com/arnegrau/qrlens/decoder"
	"github.com/arnegrau/qrlens/visual"
	"github.com/spf13/cobra"
)

func runDecode(cmd *cobra.Command, args []string) error {
	setupLogging(flagVerbose)
	imagePath, outDir := args[0], args[1]

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating output dir: %v", qrlens.ErrIoFailure, err)
	}

	img, format, err := loadImage(imagePath)
	if err != nil {
		return err
	}
	slog.Debug("loaded image", "path", imagePath, "format", format)

	ext := fileExt(imagePath)
	if ext == "" {
		ext = format
	}
	stagedName := "QR." + ext
	if err := copyFile(imagePath, filepath.Join(outDir, stagedName)); err != nil {
		return fmt.Errorf("%w: staging input image: %v", qrlens.ErrIoFailure, err)
	}

	bounds := img.Bounds()
	debugFile, err := os.Create(filepath.Join(outDir, "debug.svg"))
	if err != nil {
		return fmt.Errorf("%w: creating debug.svg: %v", qrlens.ErrIoFailure, err)
	}
	defer debugFile.Close()
	debugSVG := visual.NewSVG(debugFile, bounds.Dx(), bounds.Dy(), stagedName)
	defer debugSVG.Finish()

	decodedFile, err := os.Create(filepath.Join(outDir, "decoded.svg"))
	if err != nil {
		return fmt.Errorf("%w: creating decoded.svg: %v", qrlens.ErrIoFailure, err)
	}
	defer decodedFile.Close()
	decodedSVG := visual.NewSVG(decodedFile, bounds.Dx(), bounds.Dy(), "")
	defer decodedSVG.Finish()

	result, err := qrlens.Decode(img, debugSVG, decodedSVG)
	if err != nil {
		return err
	}

	if err := debugSVG.Finish(); err != nil {
		return fmt.Errorf("%w: writing debug.svg: %v", qrlens.ErrIoFailure, err)
	}
	if err := decodedSVG.Finish(); err != nil {
		return fmt.Errorf("%w: writing decoded.svg: %v", qrlens.ErrIoFailure, err)
	}

	ascii := fmt.Sprintf("%q", string(result.Data))
	if result.Encoding == decoder.EncodingAlphanumeric {
		if s, err := decoder.AlphanumericString(result.Data, result.Length); err == nil {
			ascii = fmt.Sprintf("%q", s)
		}
	}

	fmt.Printf("encoding = 0b%04b\n", result.Encoding)
	fmt.Printf("length = %d\n", result.Length)
	fmt.Printf("data = %v\n", result.Data)
	fmt.Printf("ascii = %s\n", ascii)
	return nil
}

func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: opening image: %v", qrlens.ErrIoFailure, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", qrlens.ErrImageDecodeFailure, err)
	}
	return img, format, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// fileExt normalizes a path's extension into the suffix used for the
// staged "QR.<ext>" filename (no leading dot).
func fileExt(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

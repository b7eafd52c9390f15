package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	md2img "github.com/alnah/go-md2img"
	"github.com/alnah/go-md2img/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrTooManyArgs  = errors.New("expected at most one input file")
	ErrReadMarkdown = errors.New("failed to read markdown input")
	ErrWriteOutput  = errors.New("failed to write output")
)

// filePermissions for written images: owner read+write, others read.
const filePermissions = 0o644

// run executes one render: read input, resolve config, consult the
// threshold policy, and write either literal text to stdout or image
// bytes to the output path.
func run(flags *renderFlags) error {
	if flags.version {
		fmt.Println("md2img", Version)
		return nil
	}

	markdown, err := readInput(flags.input)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}

	eng, err := md2img.New(opts...)
	if err != nil {
		return err
	}
	defer eng.Close()

	if !flags.force && !eng.ShouldRender(markdown) {
		// Below threshold or plain mode: the text itself is the result.
		fmt.Print(markdown)
		return nil
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "rendering %d characters via %s backend\n",
			utf8.RuneCountInString(markdown), cfg.Backend.Kind)
	}

	result, err := eng.Render(context.Background(), markdown, flags.title)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(result, md2img.ImageMarker) {
		// Engine was left in plain mode; passthrough.
		fmt.Print(result)
		return nil
	}

	img, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result, md2img.ImageMarker))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	outPath := flags.out
	if outPath == "" {
		outPath = defaultOutputPath(flags.input)
	}

	if err := os.WriteFile(outPath, img, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(img), outPath)
	}
	return nil
}

// readInput reads the markdown source from a file or stdin ("-").
func readInput(input string) (string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(input) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return string(data), nil
}

// resolveConfig merges the config file (if any) with explicit flags.
// Flags win over file values; file values win over defaults.
func resolveConfig(flags *renderFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.mode != "" {
		cfg.Render.Mode = flags.mode
	}
	if flags.threshold != thresholdUnset {
		cfg.Render.Threshold = flags.threshold
	}
	if flags.backend != "" {
		cfg.Backend.Kind = flags.backend
	}
	if flags.serviceURL != "" {
		cfg.Backend.ServiceURL = flags.serviceURL
	}
	if flags.timeout > 0 {
		cfg.Backend.TimeoutSeconds = flags.timeout
	}

	// --force implies rendering; --out alone does not.
	if flags.force {
		cfg.Render.Mode = string(md2img.ModeRendered)
	}

	return cfg, nil
}

// engineOptions translates file/flag config into library options.
func engineOptions(cfg *config.Config) ([]md2img.Option, error) {
	opts := []md2img.Option{
		md2img.WithMode(md2img.Mode(cfg.Render.Mode)),
		md2img.WithThreshold(cfg.Render.Threshold),
	}

	timeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	if timeout > 0 {
		opts = append(opts, md2img.WithTimeout(timeout))
	}

	if cfg.Output.ArtifactDir != "" {
		opts = append(opts, md2img.WithArtifactDir(cfg.Output.ArtifactDir))
	}

	switch cfg.Backend.Kind {
	case md2img.BackendChrome, "":
		// Default chrome backend is created by the engine.
	case md2img.BackendService:
		svc, err := md2img.NewServiceBackend(cfg.Backend.ServiceURL, timeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, md2img.WithBackend(svc))
	default:
		return nil, fmt.Errorf("%w: %q", md2img.ErrInvalidBackend, cfg.Backend.Kind)
	}

	return opts, nil
}

// defaultOutputPath derives the image path from the input file name.
func defaultOutputPath(input string) string {
	if input == "-" {
		return "render.jpg"
	}
	if dot := strings.LastIndex(input, "."); dot > 0 {
		return input[:dot] + ".jpg"
	}
	return input + ".jpg"
}

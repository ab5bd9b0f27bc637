// Package ingest reads this tool's own JSON and YAML documents: calculation
// input files and emission factor catalogs. The document format is chosen
// from the file extension; unknown fields are rejected in both formats.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ghgcalc/internal/logging"
)

// Format is a supported document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for files whose extension is not .json, .yaml or .yml.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatFromPath infers the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (want .json, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode strictly unmarshals data in the given format into v.
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeFile reads path and decodes it into v using the format implied by its extension.
func DecodeFile(ctx context.Context, path string, v any) error {
	log := logging.FromContext(ctx)

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Err(err).
			Str("path", path).
			Msg("failed to read document")
		return fmt.Errorf("reading %s: %w", path, err)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("path", path).
		Str("format", string(format)).
		Int("file_size_bytes", len(data)).
		Msg("document read")

	if err := Decode(data, format, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

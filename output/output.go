package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"cfngen/cfn/models"
	"cfngen/errors"
)

const (
	packageName = "output"

	indentWidth = 2
)

// Format defines the serialization of a written template.
type Format string

const (
	// FormatJSON writes the template as indented JSON with sorted keys
	FormatJSON Format = "json"
	// FormatYAML writes the template as YAML
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user supplied format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// DefaultPath returns the file name used when no output path is configured.
func DefaultPath(format Format) string {
	if format == FormatYAML {
		return "temp.yaml"
	}
	return "temp.json"
}

// Render serializes the template in the given format.
func Render(tpl *models.Template, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(tpl)
	case FormatYAML:
		return renderYAML(tpl)
	default:
		return nil, errors.New(errors.ErrTemplateRender, "unsupported output format",
			map[string]interface{}{
				"format": string(format),
			}, nil)
	}
}

func renderJSON(tpl *models.Template) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indentWidth))
	if err := enc.Encode(tpl); err != nil {
		return nil, errors.New(errors.ErrTemplateRender, "error marshaling template to JSON", nil, err)
	}
	return escapeNonASCII(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// escapeNonASCII rewrites every non-ASCII rune as a \uXXXX escape, using
// surrogate pairs above the basic multilingual plane. Encoded JSON only holds
// such runes inside strings, so the document keeps its meaning.
func escapeNonASCII(data []byte) []byte {
	if !bytes.ContainsFunc(data, func(r rune) bool { return r >= utf8.RuneSelf }) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for _, r := range string(data) {
		switch {
		case r < utf8.RuneSelf:
			buf.WriteByte(byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&buf, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&buf, `\u%04x`, r)
		}
	}
	return buf.Bytes()
}

func renderYAML(tpl *models.Template) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indentWidth)
	if err := enc.Encode(tpl); err != nil {
		return nil, errors.New(errors.ErrTemplateRender, "error marshaling template to YAML", nil, err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.New(errors.ErrTemplateRender, "error flushing YAML encoder", nil, err)
	}
	return buf.Bytes(), nil
}

// FileWriter writes rendered templates to the local file system.
type FileWriter struct {
	logger *zap.Logger
}

// NewFileWriter creates a FileWriter logging through logger.
func NewFileWriter(logger *zap.Logger) *FileWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWriter{logger: logger.With(zap.String("package", packageName))}
}

// Write renders tpl and replaces the contents of path with it.
func (w *FileWriter) Write(path string, tpl *models.Template, format Format) error {
	data, err := Render(tpl, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.ErrOutputWrite, "failed to write template",
			map[string]interface{}{
				"path": path,
			}, err)
	}

	w.logger.Info("Template written",
		zap.String("operation", "template_write"),
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)
	return nil
}

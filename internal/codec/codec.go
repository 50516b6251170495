// Package codec reads and writes navigation trees in the formats docnav
// understands: JSON, YAML, Doxygen's menudata.js, Markdown link lists, and
// (write only) Go source.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

// Format names a serialization.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatJS       Format = "js"
	FormatMarkdown Format = "markdown"
	FormatGo       Format = "go"
)

// Formats lists every known format in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatJS, FormatMarkdown, FormatGo}

// Options tunes encoders. Zero value is usable.
type Options struct {
	// Indent is used by JSON (default two spaces, "-" for compact output).
	Indent string
	// OmitLicense drops the generator's license banner from menudata.js output.
	OmitLicense bool
	// VarName is the JavaScript variable (default "menudata").
	VarName string
	// Package and GoVar name the generated Go file's package and variable.
	Package string
	GoVar   string
}

func (o Options) varName() string {
	if o.VarName == "" {
		return "menudata"
	}
	return o.VarName
}

var formatNames = normalization.NewNormalizer("format", map[string]Format{
	"json":       FormatJSON,
	"yaml":       FormatYAML,
	"yml":        FormatYAML,
	"js":         FormatJS,
	"javascript": FormatJS,
	"menudata":   FormatJS,
	"md":         FormatMarkdown,
	"markdown":   FormatMarkdown,
	"go":         FormatGo,
	"golang":     FormatGo,
}, "")

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	return formatNames.NormalizeWithError(s)
}

// Detect infers the format from a file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".js":
		return FormatJS, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".go":
		return FormatGo, nil
	}
	return "", errors.ValidationError("cannot infer format from file extension").WithContext("path", path).Build()
}

// Decode parses a tree and validates it. source names the input in errors.
func Decode(r io.Reader, f Format, source string) (*menu.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read input").WithContext("source", source).Build()
	}

	var root *menu.Node
	switch f {
	case FormatJSON:
		root, err = decodeJSON(data)
	case FormatYAML:
		root, err = decodeYAML(data)
	case FormatJS:
		root, err = decodeJS(data, "")
	case FormatMarkdown:
		root, err = decodeMarkdown(data)
	case FormatGo:
		return nil, errors.ValidationError("go format is write-only").Build()
	default:
		return nil, errors.ValidationError("unknown format").WithContext("format", string(f)).Build()
	}
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext("source", source).WithContext("format", string(f))
		}
		return nil, errors.WrapError(err, errors.CategoryParse, "decode "+string(f)).
			WithContext("source", source).Build()
	}
	if err := menu.ValidateSource(source, root); err != nil {
		return nil, err
	}
	return root, nil
}

// Encode writes root in format f. The tree is validated first, and trees
// the format cannot carry are rejected, so every format's output loads back
// into an equal tree.
func Encode(w io.Writer, root *menu.Node, f Format, opts Options) error {
	if err := menu.Validate(root); err != nil {
		return err
	}
	if err := checkRepresentable(root, f); err != nil {
		return err
	}
	switch f {
	case FormatJSON:
		return encodeJSON(w, root, opts)
	case FormatYAML:
		return encodeYAML(w, root)
	case FormatJS:
		return encodeJS(w, root, opts)
	case FormatMarkdown:
		return encodeMarkdown(w, root)
	case FormatGo:
		return encodeGo(w, root, opts)
	}
	return errors.ValidationError("unknown format").WithContext("format", string(f)).Build()
}

// checkRepresentable rejects trees that js, markdown and go output would
// change: those layouts have no place for the root's own text and url, an
// empty root would be written as an empty children list, and Markdown list
// items are single lines.
func checkRepresentable(root *menu.Node, f Format) error {
	switch f {
	case FormatJS, FormatMarkdown, FormatGo:
	default:
		return nil
	}
	if root.Text != "" || root.URL != "" {
		return errors.ValidationError("root text and url cannot be written in this format").
			WithContext("format", string(f)).WithContext("label", root.Text).Build()
	}
	if len(root.Children) == 0 {
		return errors.ValidationError("empty tree cannot be written in this format").
			WithContext("format", string(f)).Build()
	}
	if f != FormatMarkdown {
		return nil
	}
	for e, err := range menu.Walk(root) {
		if err != nil {
			return err
		}
		if strings.ContainsFunc(e.Label, unicode.IsControl) || strings.ContainsFunc(e.URL, unicode.IsControl) {
			return errors.ValidationError("control characters cannot be written in this format").
				WithContext("format", string(f)).WithContext("label", e.Label).Build()
		}
	}
	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(root *menu.Node, f Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root, f, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile decodes path. An empty format is detected from the extension.
func ReadFile(path string, f Format) (*menu.Node, error) {
	if f == "" {
		var err error
		if f, err = Detect(path); err != nil {
			return nil, err
		}
	}
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "open navigation source").
			WithContext("path", path).Build()
	}
	defer func() {
		_ = file.Close()
	}()
	return Decode(file, f, path)
}

// WriteFile encodes root into path, replacing it atomically.
func WriteFile(path string, root *menu.Node, f Format, opts Options) error {
	if f == "" {
		var err error
		if f, err = Detect(path); err != nil {
			return err
		}
	}
	data, err := Marshal(root, f, opts)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write output").WithContext("path", path).Build()
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.WrapError(err, errors.CategoryFileSystem, fmt.Sprintf("rename %s", tmp)).WithContext("path", path).Build()
	}
	return nil
}

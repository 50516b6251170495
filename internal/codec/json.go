package codec

import (
	"bytes"
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

func decodeJSON(data []byte) (*menu.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var root menu.Node
	if err := dec.Decode(&root); err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "invalid JSON").Build()
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.ParseError("trailing data after JSON document").Build()
	}
	return &root, nil
}

func encodeJSON(w io.Writer, root *menu.Node, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	switch opts.Indent {
	case "":
		enc.SetIndent("", "  ")
	case "-":
	default:
		enc.SetIndent("", opts.Indent)
	}
	return enc.Encode(root)
}

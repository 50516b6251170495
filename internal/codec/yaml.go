package codec

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

func decodeYAML(data []byte) (*menu.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var root menu.Node
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, errors.ParseError("empty YAML document").Build()
		}
		return nil, errors.WrapError(err, errors.CategoryParse, "invalid YAML").Build()
	}
	return &root, nil
}

func encodeYAML(w io.Writer, root *menu.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

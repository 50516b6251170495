package codec

import (
	"bytes"
	"go/format"
	"io"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

const menuImport = "git.home.luguber.info/inful/docnav/internal/menu"

// encodeGo renders the tree as a gofmt'ed Go file declaring a *menu.Node.
func encodeGo(w io.Writer, root *menu.Node, opts Options) error {
	pkg, name := opts.Package, opts.GoVar
	if pkg == "" {
		pkg = "menudata"
	}
	if name == "" {
		name = "site"
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by docnav convert; DO NOT EDIT.\n\n")
	buf.WriteString("package " + pkg + "\n\n")
	buf.WriteString("import " + strconv.Quote(menuImport) + "\n\n")
	buf.WriteString("var " + name + " = &menu.Node{Children: []*menu.Node{\n")
	writeGoChildren(&buf, root.Children, 1)
	buf.WriteString("}}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "format generated Go source").Build()
	}
	_, err = w.Write(src)
	return err
}

func writeGoChildren(buf *bytes.Buffer, children []*menu.Node, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, c := range children {
		buf.WriteString(indent)
		buf.WriteString("{Text: " + strconv.Quote(c.Text) + ", URL: " + strconv.Quote(c.URL))
		if len(c.Children) == 0 {
			buf.WriteString("},\n")
			continue
		}
		buf.WriteString(", Children: []*menu.Node{\n")
		writeGoChildren(buf, c.Children, depth+1)
		buf.WriteString(indent + "}},\n")
	}
}

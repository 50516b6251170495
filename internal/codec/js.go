package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/menu"
)

// doxygenLicense is the banner Doxygen puts in front of every generated script.
const doxygenLicense = `/*
 @licstart  The following is the entire license notice for the JavaScript code in this file.

 The MIT License (MIT)

 Copyright (C) 1997-2020 by Dimitri van Heesch

 Permission is hereby granted, free of charge, to any person obtaining a copy of this software
 and associated documentation files (the "Software"), to deal in the Software without restriction,
 including without limitation the rights to use, copy, modify, merge, publish, distribute,
 sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is
 furnished to do so, subject to the following conditions:

 The above copyright notice and this permission notice shall be included in all copies or
 substantial portions of the Software.

 THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING
 BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
 NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
 DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

 @licend  The above is the entire license notice for the JavaScript code in this file
*/
`

// decodeJS reads a menudata.js script: a single variable declaration whose
// initializer is an object literal {children:[...]}. varName selects the
// variable; empty accepts the first declaration.
func decodeJS(data []byte, varName string) (*menu.Node, error) {
	ast, err := js.Parse(parse.NewInputBytes(data), js.Options{})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "invalid JavaScript").Build()
	}

	for _, stmt := range ast.List {
		decl, ok := stmt.(*js.VarDecl)
		if !ok {
			continue
		}
		for _, binding := range decl.List {
			v, ok := binding.Binding.(*js.Var)
			if !ok || binding.Default == nil {
				continue
			}
			if varName != "" && string(v.Data) != varName {
				continue
			}
			return nodeFromJS(binding.Default, "")
		}
	}
	return nil, errors.ParseError("no menu variable declaration found").WithContext("var", varName).Build()
}

func nodeFromJS(expr js.IExpr, ptr string) (*menu.Node, error) {
	obj, ok := expr.(*js.ObjectExpr)
	if !ok {
		return nil, jsError(ptr, "expected object literal")
	}
	n := &menu.Node{}
	for _, prop := range obj.List {
		if prop.Name == nil || prop.Name.IsComputed() {
			return nil, jsError(ptr, "unsupported property")
		}
		key := string(prop.Name.Literal.Data)
		if prop.Name.Literal.TokenType == js.StringToken {
			var err error
			if key, err = unquoteJS(prop.Name.Literal.Data); err != nil {
				return nil, jsError(ptr, err.Error())
			}
		}
		switch key {
		case "text", "url":
			s, err := jsString(prop.Value)
			if err != nil {
				return nil, jsError(ptr+"/"+key, err.Error())
			}
			if key == "text" {
				n.Text = s
			} else {
				n.URL = s
			}
		case "children":
			arr, ok := prop.Value.(*js.ArrayExpr)
			if !ok {
				return nil, jsError(ptr+"/children", "expected array literal")
			}
			n.Children = make([]*menu.Node, 0, len(arr.List))
			for i, el := range arr.List {
				cptr := ptr + "/children/" + strconv.Itoa(i)
				if el.Value == nil || el.Spread {
					return nil, jsError(cptr, "unsupported array element")
				}
				child, err := nodeFromJS(el.Value, cptr)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			}
		default:
			return nil, jsError(ptr, fmt.Sprintf("unknown property %q", key))
		}
	}
	return n, nil
}

func jsError(ptr, msg string) error {
	if ptr == "" {
		ptr = "/"
	}
	return errors.ParseError(msg).WithContext("pointer", ptr).Build()
}

func jsString(expr js.IExpr) (string, error) {
	lit, ok := expr.(*js.LiteralExpr)
	if !ok || lit.TokenType != js.StringToken {
		return "", fmt.Errorf("expected string literal")
	}
	return unquoteJS(lit.Data)
}

// unquoteJS decodes a single- or double-quoted JavaScript string literal.
func unquoteJS(lit []byte) (string, error) {
	if len(lit) < 2 || (lit[0] != '"' && lit[0] != '\'') || lit[len(lit)-1] != lit[0] {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	s := string(lit[1 : len(lit)-1])
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x', 'u':
			r, size, err := jsCodePoint(s[i:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += size - 1
		default:
			b.WriteByte(e)
		}
	}
	return b.String(), nil
}

// jsCodePoint decodes xHH, uHHHH or u{H...} at the start of s and returns
// the rune and the number of bytes consumed.
func jsCodePoint(s string) (rune, int, error) {
	var digits string
	var size int
	switch {
	case s[0] == 'x' && len(s) >= 3:
		digits, size = s[1:3], 3
	case strings.HasPrefix(s, "u{"):
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, fmt.Errorf("unterminated \\u{ escape")
		}
		digits, size = s[2:end], end+1
	case s[0] == 'u' && len(s) >= 5:
		digits, size = s[1:5], 5
	default:
		return 0, 0, fmt.Errorf("truncated escape")
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, 0, fmt.Errorf("invalid escape \\%s", s[:size])
	}
	return rune(v), size, nil
}

// encodeJS writes the tree in the layout Doxygen uses: one node per line,
// children arrays opened on the parent's line and closed after the last child.
func encodeJS(w io.Writer, root *menu.Node, opts Options) error {
	bw := bufio.NewWriter(w)
	if !opts.OmitLicense {
		bw.WriteString(doxygenLicense)
	}
	bw.WriteString("var " + opts.varName() + "={children:[\n")
	writeJSChildren(bw, root.Children)
	bw.WriteString("]}\n")
	return bw.Flush()
}

func writeJSChildren(bw *bufio.Writer, children []*menu.Node) {
	for i, c := range children {
		if i > 0 {
			bw.WriteString(",\n")
		}
		bw.WriteString("{text:")
		bw.WriteString(quoteJS(c.Text))
		bw.WriteString(",url:")
		bw.WriteString(quoteJS(c.URL))
		if len(c.Children) > 0 {
			bw.WriteString(",children:[\n")
			writeJSChildren(bw, c.Children)
			bw.WriteString("]")
		}
		bw.WriteString("}")
	}
}

func quoteJS(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r < 0x20 || r == 0x2028 || r == 0x2029:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

package linkcheck

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Anchors returns every fragment target defined in an HTML file: id
// attributes on any element and name attributes on <a>.
func Anchors(path string) (map[string]struct{}, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithContext("path", path).Build()
	}
	defer func() {
		_ = file.Close()
	}()
	return AnchorsFromReader(file)
}

// AnchorsFromReader is Anchors for an already opened document.
func AnchorsFromReader(r io.Reader) (map[string]struct{}, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "failed to parse HTML").Build()
	}

	anchors := map[string]struct{}{}
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" || (a.Key == "name" && n.Data == "a") {
					if a.Val != "" {
						anchors[a.Val] = struct{}{}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return anchors, nil
}

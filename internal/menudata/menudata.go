// Package menudata carries the navigation tree of the firmware documentation
// site as Doxygen generated it. menudata.js is the generator's output as
// shipped with the HTML pages; menudata_gen.go is the same tree as a Go value.
package menudata

import (
	_ "embed"

	"git.home.luguber.info/inful/docnav/internal/menu"
)

//go:generate go run ../../cmd/docnav convert --from js --to go --package menudata -o menudata_gen.go menudata.js

// Source is the generator's menudata.js, byte for byte.
//
//go:embed menudata.js
var Source []byte

// Root returns a private copy of the site's navigation tree.
func Root() *menu.Node { return site.Clone() }

package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/menu"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	SourceFlags

	JSON bool `help:"Print statistics as JSON"`
}

// Run executes the validate command. Loading already validates; the
// explicit pass also covers the embedded tree.
func (cmd *ValidateCmd) Run(g *Global, cli *CLI) error {
	root, source, err := cmd.Load(cli)
	if err != nil {
		return err
	}
	if err := menu.ValidateSource(source, root); err != nil {
		return err
	}
	stats, err := menu.Summarize(root)
	if err != nil {
		return err
	}

	out := g.out()
	if cmd.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"source":    source,
			"valid":     true,
			"nodes":     stats.Nodes,
			"leaves":    stats.Leaves,
			"max_depth": stats.MaxDepth,
			"pages":     stats.Pages,
			"anchors":   stats.Anchors,
		})
	}
	_, err = fmt.Fprintf(out, "%s: valid (%d entries, %d leaves, depth %d, %d pages, %d anchors)\n",
		source, stats.Nodes, stats.Leaves, stats.MaxDepth, stats.Pages, stats.Anchors)
	return err
}

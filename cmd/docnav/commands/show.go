package commands

import (
	"git.home.luguber.info/inful/docnav/internal/render"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	SourceFlags

	Format  string `short:"f" help:"Output format: text, html, markdown, json" default:"text" enum:"text,html,markdown,json"`
	NoURLs  bool   `name:"no-urls" help:"Omit link targets from text output"`
	BaseURL string `name:"base-url" help:"Prefix relative links in HTML output"`
	ID      string `help:"id attribute of the top-level HTML list" default:"main-menu"`
	Class   string `help:"class attribute of the top-level HTML list" default:"sm sm-dox"`
}

// Run executes the show command.
func (cmd *ShowCmd) Run(g *Global, cli *CLI) error {
	root, _, err := cmd.Load(cli)
	if err != nil {
		return err
	}

	var r render.Renderer
	switch cmd.Format {
	case "text":
		r = render.Text{Indent: "  ", HideURL: cmd.NoURLs}
	case "html":
		r = render.HTML{ID: cmd.ID, Class: cmd.Class, BaseURL: cmd.BaseURL}
	default:
		if r, err = render.New(cmd.Format); err != nil {
			return err
		}
	}
	return r.Render(g.out(), root)
}

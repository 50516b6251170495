package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/snapshot"
)

// SnapshotCmd groups the snapshot subcommands.
type SnapshotCmd struct {
	Database string `short:"d" help:"Snapshot database (default: snapshots.database)" type:"path"`

	Save SnapshotSaveCmd `cmd:"" help:"Store the current navigation tree"`
	List SnapshotListCmd `cmd:"" help:"List stored snapshots, newest first"`
	Diff SnapshotDiffCmd `cmd:"" help:"Compare two snapshots, or a snapshot with the current tree"`
}

func (cmd *SnapshotCmd) open(cli *CLI) (*snapshot.Store, error) {
	path := cmd.Database
	if path == "" {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Snapshots.Database
	}
	return snapshot.Open(path)
}

// SnapshotSaveCmd implements 'snapshot save'.
type SnapshotSaveCmd struct {
	SourceFlags

	IfChanged bool `name:"if-changed" help:"Skip saving when the latest snapshot has the same content"`
}

// Run executes the snapshot save command.
func (cmd *SnapshotSaveCmd) Run(g *Global, cli *CLI) error {
	root, source, err := cmd.Load(cli)
	if err != nil {
		return err
	}
	store, err := cli.Snapshot.open(cli)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	var snap *snapshot.Snapshot
	saved := true
	if cmd.IfChanged {
		snap, saved, err = store.SaveIfChanged(ctx, source, root)
	} else {
		snap, err = store.Save(ctx, source, root)
	}
	if err != nil {
		return err
	}
	if !saved {
		_, err = fmt.Fprintf(g.out(), "unchanged, latest is %s\n", snap.ID)
		return err
	}
	_, err = fmt.Fprintln(g.out(), snap.ID)
	return err
}

// SnapshotListCmd implements 'snapshot list'.
type SnapshotListCmd struct {
	Limit int  `short:"n" help:"Show at most this many snapshots" default:"20"`
	JSON  bool `help:"Print as JSON"`
}

// Run executes the snapshot list command.
func (cmd *SnapshotListCmd) Run(g *Global, cli *CLI) error {
	store, err := cli.Snapshot.open(cli)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snaps, err := store.List(context.Background(), cmd.Limit)
	if err != nil {
		return err
	}
	if cmd.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(snaps)
	}
	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tCREATED\tNODES\tHASH\tSOURCE")
	for _, s := range snaps {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", s.ID, s.CreatedAt.Format(time.RFC3339), s.Nodes, s.Hash[:12], s.Source)
	}
	return tw.Flush()
}

// SnapshotDiffCmd implements 'snapshot diff'.
type SnapshotDiffCmd struct {
	From string `arg:"" help:"Snapshot id, or 'latest'"`
	To   string `arg:"" optional:"" help:"Snapshot id, or 'latest' (default: the current tree)"`

	Source string `help:"Navigation tree compared against when To is omitted (embedded tree when empty)" type:"path"`
	Format string `name:"source-format" help:"Format of --source"`
	JSON   bool   `help:"Print changes as JSON"`
}

// Run executes the snapshot diff command.
func (cmd *SnapshotDiffCmd) Run(g *Global, cli *CLI) error {
	store, err := cli.Snapshot.open(cli)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	from, err := resolveSnapshot(ctx, store, cmd.From)
	if err != nil {
		return err
	}
	var to *menu.Node
	if cmd.To != "" {
		snap, err := resolveSnapshot(ctx, store, cmd.To)
		if err != nil {
			return err
		}
		to = snap.Root
	} else {
		if to, _, err = (SourceFlags{Source: cmd.Source, From: cmd.Format}).Load(cli); err != nil {
			return err
		}
	}

	changes, err := snapshot.Diff(from.Root, to)
	if err != nil {
		return err
	}
	if cmd.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(changes)
	}
	if len(changes) == 0 {
		_, err = fmt.Fprintln(g.out(), "no changes")
		return err
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(g.out(), c.String()); err != nil {
			return err
		}
	}
	return nil
}

func resolveSnapshot(ctx context.Context, store *snapshot.Store, id string) (*snapshot.Snapshot, error) {
	if id == "latest" {
		return store.Latest(ctx)
	}
	return store.Get(ctx, id)
}

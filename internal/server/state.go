package server

import (
	"bytes"
	"time"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/snapshot"
)

// state is one immutable generation of the served tree.
type state struct {
	root     *menu.Node
	source   string
	stats    menu.Stats
	etag     string
	loadedAt time.Time

	json []byte
	js   []byte
	html []byte
}

func (s *Server) build(root *menu.Node, source string) (*state, error) {
	root = root.Clone()
	hash, err := snapshot.Hash(root)
	if err != nil {
		return nil, err
	}
	stats, err := menu.Summarize(root)
	if err != nil {
		return nil, err
	}
	st := &state{
		root:     root,
		source:   source,
		stats:    stats,
		etag:     `"` + hash[:16] + `"`,
		loadedAt: time.Now().UTC(),
	}
	if st.json, err = codec.Marshal(root, codec.FormatJSON, codec.Options{}); err != nil {
		return nil, err
	}
	if st.js, err = codec.Marshal(root, codec.FormatJS, codec.Options{}); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.opts.HTML.Render(&buf, root); err != nil {
		return nil, err
	}
	st.html = buf.Bytes()
	return st, nil
}

// Package a11y produces the accessibility-tree snapshots that give every
// interesting element an agent-visible UID. Each snapshot replaces the UID
// table for its page wholesale: UIDs from older snapshots stop resolving,
// which is what forces agents to re-snapshot after navigation.
package a11y

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

// maxSnapshotLines bounds the rendered outline.
const maxSnapshotLines = 300

// Snapshot is the agent-facing rendering of one accessibility tree.
type Snapshot struct {
	Text       string `json:"text"`
	UIDCount   int    `json:"uidCount"`
	Truncated  bool   `json:"truncated"`
	Generation int    `json:"generation"`
}

// Snapshotter owns the per-page UID tables. Safe for concurrent use.
type Snapshotter struct {
	log *zap.Logger

	mu         sync.Mutex
	generation int
	tables     map[proto.TargetTargetID]map[string]proto.DOMBackendNodeID
}

func NewSnapshotter(log *zap.Logger) *Snapshotter {
	return &Snapshotter{
		log:    log,
		tables: make(map[proto.TargetTargetID]map[string]proto.DOMBackendNodeID),
	}
}

// Take captures the full accessibility tree of the page, mints a UID for
// every unignored node backed by a DOM node, and installs the new UID table
// for the page.
func (s *Snapshotter) Take(session *cdp.Session, targetID proto.TargetTargetID) (*Snapshot, error) {
	if err := session.EnsureEnabled(cdp.DomainDOM); err != nil {
		return nil, err
	}
	if err := session.EnsureEnabled(cdp.DomainAccessibility); err != nil {
		return nil, err
	}

	res, err := proto.AccessibilityGetFullAXTree{}.Call(session.Client())
	if err != nil {
		return nil, fmt.Errorf("get accessibility tree: %w", err)
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	byID := make(map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, len(res.Nodes))
	hasParent := make(map[proto.AccessibilityAXNodeID]bool)
	for _, node := range res.Nodes {
		byID[node.NodeID] = node
		for _, child := range node.ChildIDs {
			hasParent[child] = true
		}
	}

	table := make(map[string]proto.DOMBackendNodeID)
	var lines []string
	seq := 0
	truncated := false

	var walk func(id proto.AccessibilityAXNodeID, depth int)
	walk = func(id proto.AccessibilityAXNodeID, depth int) {
		node, ok := byID[id]
		if !ok {
			return
		}
		if len(lines) >= maxSnapshotLines {
			truncated = true
			return
		}
		if line := renderNode(node, depth, gen, &seq, table); line != "" {
			lines = append(lines, line)
		}
		for _, child := range node.ChildIDs {
			walk(child, depth+1)
		}
	}
	for _, node := range res.Nodes {
		if !hasParent[node.NodeID] {
			walk(node.NodeID, 0)
		}
	}

	s.mu.Lock()
	s.tables[targetID] = table
	s.mu.Unlock()

	s.log.Info("snapshot taken",
		zap.String("target", string(targetID)),
		zap.Int("uids", len(table)),
		zap.Int("generation", gen),
		zap.Bool("truncated", truncated))

	text := strings.Join(lines, "\n")
	if truncated {
		text += fmt.Sprintf("\n... truncated at %d lines", maxSnapshotLines)
	}
	return &Snapshot{
		Text:       text,
		UIDCount:   len(table),
		Truncated:  truncated,
		Generation: gen,
	}, nil
}

// renderNode formats one AX node as an outline line and mints its UID when it
// maps back to a DOM node. Ignored and structural noise nodes render nothing.
func renderNode(node *proto.AccessibilityAXNode, depth, gen int, seq *int, table map[string]proto.DOMBackendNodeID) string {
	if node.Ignored || node.Role == nil {
		return ""
	}
	role := node.Role.Value.String()
	if role == "" || role == "none" || role == "generic" || role == "InlineTextBox" {
		return ""
	}
	name := ""
	if node.Name != nil {
		name = node.Name.Value.String()
	}

	line := strings.Repeat("  ", depth) + "[" + role + "]"
	if name != "" {
		line += " " + name
	}

	if node.BackendDOMNodeID != 0 {
		*seq++
		uid := fmt.Sprintf("%d_%d", gen, *seq)
		table[uid] = node.BackendDOMNodeID
		line += " uid=" + uid
	}
	return line
}

// Table returns the UID lookup for a page. Pages without a snapshot get an
// empty lookup, so every UID fails as unknown rather than erroring here.
func (s *Snapshotter) Table(targetID proto.TargetTargetID) cdp.UIDLookup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tableView{m: s.tables[targetID]}
}

// Drop discards the UID table of a closed page.
func (s *Snapshotter) Drop(targetID proto.TargetTargetID) {
	s.mu.Lock()
	delete(s.tables, targetID)
	s.mu.Unlock()
}

type tableView struct {
	m map[string]proto.DOMBackendNodeID
}

func (t tableView) Lookup(uid string) (proto.DOMBackendNodeID, bool) {
	id, ok := t.m[uid]
	return id, ok
}

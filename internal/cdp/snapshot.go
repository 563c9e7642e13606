package cdp

import "github.com/go-rod/rod/lib/proto"

// maxSnapshotNodes caps how many nodes a document snapshot reports,
// regardless of how many the page holds.
const maxSnapshotNodes = 50

// SnapshotNode is one flattened node from a whole-document snapshot.
type SnapshotNode struct {
	BackendNodeID int    `json:"backendNodeId"`
	NodeType      int    `json:"nodeType"`
	NodeName      string `json:"nodeName"`
	NodeValue     string `json:"nodeValue,omitempty"`
	ParentIndex   int    `json:"parentIndex"`
}

// SnapshotDocument is the bounded view of one captured document.
type SnapshotDocument struct {
	URL       string         `json:"url"`
	Title     string         `json:"title"`
	NodeCount int            `json:"nodeCount"`
	Nodes     []SnapshotNode `json:"nodes"`
	Truncated bool           `json:"truncated"`
}

// SnapshotResult carries every document the protocol returned. Truncated is
// set whenever any document was cut, so partial data is never silent.
type SnapshotResult struct {
	Documents []SnapshotDocument `json:"documents"`
	Truncated bool               `json:"truncated"`
}

// CaptureSnapshot takes a whole-document snapshot via the DOMSnapshot domain
// and flattens it into a bounded structure: at most maxSnapshotNodes nodes
// per document, all documents the protocol reports.
func CaptureSnapshot(session *Session, computedStyles []string) (*SnapshotResult, error) {
	if err := session.EnsureEnabled(DomainDOMSnapshot); err != nil {
		return nil, err
	}
	if computedStyles == nil {
		computedStyles = []string{}
	}

	res, err := proto.DOMSnapshotCaptureSnapshot{
		ComputedStyles: computedStyles,
	}.Call(session.Client())
	if err != nil {
		return nil, newProtocolError("capture snapshot", err)
	}

	out := &SnapshotResult{Documents: make([]SnapshotDocument, 0, len(res.Documents))}
	for _, doc := range res.Documents {
		formatted := formatSnapshotDocument(doc, res.Strings)
		if formatted.Truncated {
			out.Truncated = true
		}
		out.Documents = append(out.Documents, formatted)
	}
	return out, nil
}

func formatSnapshotDocument(doc *proto.DOMSnapshotDocumentSnapshot, table []string) SnapshotDocument {
	out := SnapshotDocument{
		URL:   stringAt(table, int(doc.DocumentURL)),
		Title: stringAt(table, int(doc.Title)),
		Nodes: []SnapshotNode{},
	}
	if doc.Nodes == nil {
		return out
	}

	nodes := doc.Nodes
	total := len(nodes.NodeName)
	out.NodeCount = total
	out.Truncated = total > maxSnapshotNodes

	limit := total
	if limit > maxSnapshotNodes {
		limit = maxSnapshotNodes
	}
	for i := 0; i < limit; i++ {
		n := SnapshotNode{
			NodeName:    stringAt(table, int(nodes.NodeName[i])),
			ParentIndex: -1,
		}
		if i < len(nodes.NodeType) {
			n.NodeType = nodes.NodeType[i]
		}
		if i < len(nodes.NodeValue) {
			n.NodeValue = stringAt(table, int(nodes.NodeValue[i]))
		}
		if i < len(nodes.BackendNodeID) {
			n.BackendNodeID = int(nodes.BackendNodeID[i])
		}
		if i < len(nodes.ParentIndex) {
			n.ParentIndex = nodes.ParentIndex[i]
		}
		out.Nodes = append(out.Nodes, n)
	}
	return out
}

// stringAt resolves a snapshot string-table index. Negative indexes mean "no
// value" in the protocol.
func stringAt(table []string, i int) string {
	if i < 0 || i >= len(table) {
		return ""
	}
	return table[i]
}

package cdp

import (
	"strings"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// BoxModel describes the four nested rendering rectangles of an element.
type BoxModel struct {
	Content Rect `json:"content"`
	Padding Rect `json:"padding"`
	Border  Rect `json:"border"`
	Margin  Rect `json:"margin"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
}

// GetBoxModel fetches and normalizes the node's box model. Nodes without one
// (SVG children, display:none, pseudo nodes) fail with an
// optional-data-unavailable error: callers substitute null instead of failing
// the whole request.
func GetBoxModel(session *Session, nodeID proto.DOMNodeID) (*BoxModel, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return nil, err
	}
	res, err := proto.DOMGetBoxModel{NodeID: nodeID}.Call(session.Client())
	if err != nil {
		return nil, newOptionalUnavailable("box model", err)
	}
	if res.Model == nil {
		return nil, newOptionalUnavailable("box model", errNoNode)
	}
	return &BoxModel{
		Content: FormatQuad(res.Model.Content),
		Padding: FormatQuad(res.Model.Padding),
		Border:  FormatQuad(res.Model.Border),
		Margin:  FormatQuad(res.Model.Margin),
		Width:   res.Model.Width,
		Height:  res.Model.Height,
	}, nil
}

// GetOuterHTML returns the node's outer HTML, truncated to maxLength bytes
// when maxLength > 0. Failure is optional-data-unavailable.
func GetOuterHTML(session *Session, nodeID proto.DOMNodeID, maxLength int) (string, bool, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return "", false, err
	}
	res, err := proto.DOMGetOuterHTML{NodeID: nodeID}.Call(session.Client())
	if err != nil {
		return "", false, newOptionalUnavailable("outer HTML", err)
	}
	html := res.OuterHTML
	if maxLength > 0 && len(html) > maxLength {
		return html[:maxLength], true, nil
	}
	return html, false, nil
}

// GetAttributes returns the node's attributes as a name→value map. Failure is
// optional-data-unavailable.
func GetAttributes(session *Session, nodeID proto.DOMNodeID) (map[string]string, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return nil, err
	}
	res, err := proto.DOMGetAttributes{NodeID: nodeID}.Call(session.Client())
	if err != nil {
		return nil, newOptionalUnavailable("attributes", err)
	}
	attrs := make(map[string]string, len(res.Attributes)/2)
	for i := 0; i+1 < len(res.Attributes); i += 2 {
		attrs[res.Attributes[i]] = res.Attributes[i+1]
	}
	return attrs, nil
}

// NodeSummary is the compact description returned for selector queries.
type NodeSummary struct {
	BackendNodeID int    `json:"backendNodeId"`
	Tag           string `json:"tag"`
	ID            string `json:"id,omitempty"`
	Class         string `json:"class,omitempty"`
}

// DocumentRoot returns the node id of the document root (depth 1, no
// descendants requested).
func DocumentRoot(session *Session) (proto.DOMNodeID, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return 0, err
	}
	res, err := proto.DOMGetDocument{Depth: gson.Int(1)}.Call(session.Client())
	if err != nil {
		return 0, newProtocolError("get document", err)
	}
	if res.Root == nil {
		return 0, newProtocolError("get document", errNoNode)
	}
	return res.Root.NodeID, nil
}

// QuerySelector finds nodes matching a CSS selector under the document root.
// With all=false at most one node is returned. Zero matches is a normal
// result, not an error. limit bounds the summaries when all=true.
func QuerySelector(session *Session, selector string, all bool, limit int) ([]NodeSummary, error) {
	root, err := DocumentRoot(session)
	if err != nil {
		return nil, err
	}

	var nodeIDs []proto.DOMNodeID
	if all {
		res, err := proto.DOMQuerySelectorAll{NodeID: root, Selector: selector}.Call(session.Client())
		if err != nil {
			return nil, newProtocolError("query selector all", err)
		}
		nodeIDs = res.NodeIDs
	} else {
		res, err := proto.DOMQuerySelector{NodeID: root, Selector: selector}.Call(session.Client())
		if err != nil {
			return nil, newProtocolError("query selector", err)
		}
		if res.NodeID != 0 {
			nodeIDs = []proto.DOMNodeID{res.NodeID}
		}
	}

	if limit > 0 && len(nodeIDs) > limit {
		nodeIDs = nodeIDs[:limit]
	}

	summaries := make([]NodeSummary, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		desc, err := proto.DOMDescribeNode{NodeID: id}.Call(session.Client())
		if err != nil || desc.Node == nil {
			// Node vanished between query and describe; report what we can.
			continue
		}
		s := NodeSummary{
			BackendNodeID: int(desc.Node.BackendNodeID),
			Tag:           strings.ToLower(desc.Node.NodeName),
		}
		for i := 0; i+1 < len(desc.Node.Attributes); i += 2 {
			switch desc.Node.Attributes[i] {
			case "id":
				s.ID = desc.Node.Attributes[i+1]
			case "class":
				s.Class = desc.Node.Attributes[i+1]
			}
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

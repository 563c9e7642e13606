package cdp

import (
	"sort"

	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/errgroup"
)

// DefaultCompareProperties are the layout and visual properties compared when
// the caller supplies none.
var DefaultCompareProperties = []string{
	"display", "position", "width", "height",
	"margin", "padding", "border",
	"color", "background-color",
	"font-size", "font-family", "font-weight", "line-height", "text-align",
	"visibility", "opacity", "z-index", "overflow",
	"flex-direction", "justify-content", "align-items",
}

// PropertyDiff holds the two differing values for one property. An absent
// value is normalized to the empty string.
type PropertyDiff struct {
	Element1 string `json:"element1"`
	Element2 string `json:"element2"`
}

// CompareResult is the symmetric diff of two elements' computed styles.
// Properties equal and non-empty on both sides land in Same; properties equal
// but empty on both sides appear in neither list (preserved source behavior:
// "both missing" and "both present and empty" are not distinguished).
type CompareResult struct {
	Differences map[string]PropertyDiff `json:"differences"`
	Same        []string                `json:"same"`
}

// CompareStyles fetches computed style for both nodes and buckets every
// requested property into differing or same. The two style fetches have no
// ordering dependency and are issued concurrently. Iteration order over
// properties is stable: the caller's order, or sorted for the default list.
func CompareStyles(session *Session, node1, node2 proto.DOMNodeID, properties []string) (*CompareResult, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return nil, err
	}
	if err := session.EnsureEnabled(DomainCSS); err != nil {
		return nil, err
	}

	if len(properties) == 0 {
		properties = append([]string(nil), DefaultCompareProperties...)
		sort.Strings(properties)
	}

	var styles1, styles2 map[string]string
	var g errgroup.Group
	g.Go(func() error {
		m, err := fetchComputedStyle(session, node1)
		styles1 = m
		return err
	})
	g.Go(func() error {
		m, err := fetchComputedStyle(session, node2)
		styles2 = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &CompareResult{
		Differences: make(map[string]PropertyDiff),
		Same:        []string{},
	}
	for _, prop := range properties {
		v1, v2 := styles1[prop], styles2[prop]
		switch {
		case v1 != v2:
			result.Differences[prop] = PropertyDiff{Element1: v1, Element2: v2}
		case v1 != "":
			result.Same = append(result.Same, prop)
		}
	}
	return result, nil
}

func fetchComputedStyle(session *Session, nodeID proto.DOMNodeID) (map[string]string, error) {
	res, err := proto.CSSGetComputedStyleForNode{NodeID: nodeID}.Call(session.Client())
	if err != nil {
		return nil, newProtocolError("get computed style", err)
	}
	return ComputedStyleToObject(res.ComputedStyle, nil), nil
}

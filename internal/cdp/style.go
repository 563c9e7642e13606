package cdp

import "github.com/go-rod/rod/lib/proto"

// CSSPropertiesToObject projects a CSS property list into a name→value map.
// Disabled and empty-valued properties are dropped. When filter is non-empty
// only the listed property names pass; every key in the result is then a
// member of filter. Later occurrences of a name overwrite earlier ones, which
// matches how the cascade reports shorthand expansions.
func CSSPropertiesToObject(props []*proto.CSSCSSProperty, filter []string) map[string]string {
	var allowed map[string]bool
	if len(filter) > 0 {
		allowed = make(map[string]bool, len(filter))
		for _, name := range filter {
			allowed[name] = true
		}
	}

	out := make(map[string]string)
	for _, p := range props {
		if p == nil || p.Disabled || p.Value == "" {
			continue
		}
		if allowed != nil && !allowed[p.Name] {
			continue
		}
		out[p.Name] = p.Value
	}
	return out
}

// GetInlineStyles fetches the node's inline style (the style attribute) and
// attribute-defined presentation style, projected through
// CSSPropertiesToObject with the optional filter.
func GetInlineStyles(session *Session, nodeID proto.DOMNodeID, filter []string) (inline, attributes map[string]string, err error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return nil, nil, err
	}
	if err := session.EnsureEnabled(DomainCSS); err != nil {
		return nil, nil, err
	}
	res, err := proto.CSSGetInlineStylesForNode{NodeID: nodeID}.Call(session.Client())
	if err != nil {
		return nil, nil, newProtocolError("get inline styles", err)
	}
	if res.InlineStyle != nil {
		inline = CSSPropertiesToObject(res.InlineStyle.CSSProperties, filter)
	} else {
		inline = map[string]string{}
	}
	if res.AttributesStyle != nil {
		attributes = CSSPropertiesToObject(res.AttributesStyle.CSSProperties, filter)
	}
	return inline, attributes, nil
}

// GetComputedStyles fetches the node's full computed style, optionally
// filtered to the given property names.
func GetComputedStyles(session *Session, nodeID proto.DOMNodeID, filter []string) (map[string]string, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return nil, err
	}
	if err := session.EnsureEnabled(DomainCSS); err != nil {
		return nil, err
	}
	res, err := proto.CSSGetComputedStyleForNode{NodeID: nodeID}.Call(session.Client())
	if err != nil {
		return nil, newProtocolError("get computed style", err)
	}
	return ComputedStyleToObject(res.ComputedStyle, filter), nil
}

// ComputedStyleToObject is the computed-style variant: the protocol never
// reports disabled entries there, so only empties are skipped.
func ComputedStyleToObject(props []*proto.CSSCSSComputedStyleProperty, filter []string) map[string]string {
	var allowed map[string]bool
	if len(filter) > 0 {
		allowed = make(map[string]bool, len(filter))
		for _, name := range filter {
			allowed[name] = true
		}
	}

	out := make(map[string]string)
	for _, p := range props {
		if p == nil || p.Value == "" {
			continue
		}
		if allowed != nil && !allowed[p.Name] {
			continue
		}
		out[p.Name] = p.Value
	}
	return out
}

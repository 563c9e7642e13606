package cdp

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// styleServer answers CSS.getComputedStyleForNode per node id.
func styleServer(styles map[proto.DOMNodeID]map[string]string) func(string, []byte) ([]byte, error) {
	return func(method string, params []byte) ([]byte, error) {
		if method != "CSS.getComputedStyleForNode" {
			return []byte(`{}`), nil
		}
		var req struct {
			NodeID proto.DOMNodeID `json:"nodeId"`
		}
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, err
		}
		m, ok := styles[req.NodeID]
		if !ok {
			return nil, fmt.Errorf("no styles for node %d", req.NodeID)
		}
		type prop struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}
		var props []prop
		for name, value := range m {
			props = append(props, prop{name, value})
		}
		return json.Marshal(map[string]any{"computedStyle": props})
	}
}

func TestCompareStyles_Buckets(t *testing.T) {
	client := &fakeClient{}
	client.handler = styleServer(map[proto.DOMNodeID]map[string]string{
		1: {"color": "red", "display": "block", "width": "10px"},
		2: {"color": "blue", "display": "block", "width": "10px"},
	})
	sess := newTestManager().Get("page1", client)

	result, err := CompareStyles(sess, 1, 2, []string{"color", "display", "width"})
	require.NoError(t, err)

	assert.Equal(t, map[string]PropertyDiff{
		"color": {Element1: "red", Element2: "blue"},
	}, result.Differences)
	assert.Equal(t, []string{"display", "width"}, result.Same)
}

func TestCompareStyles_AbsentNormalizedToEmpty(t *testing.T) {
	client := &fakeClient{}
	client.handler = styleServer(map[proto.DOMNodeID]map[string]string{
		1: {"color": "red"},
		2: {},
	})
	sess := newTestManager().Get("page1", client)

	result, err := CompareStyles(sess, 1, 2, []string{"color"})
	require.NoError(t, err)

	assert.Equal(t, PropertyDiff{Element1: "red", Element2: ""}, result.Differences["color"])
}

// A property empty on both sides is reported in neither list.
func TestCompareStyles_EmptyOnBothSidesOmitted(t *testing.T) {
	client := &fakeClient{}
	client.handler = styleServer(map[proto.DOMNodeID]map[string]string{
		1: {}, 2: {},
	})
	sess := newTestManager().Get("page1", client)

	result, err := CompareStyles(sess, 1, 2, []string{"color"})
	require.NoError(t, err)

	assert.Empty(t, result.Differences)
	assert.Empty(t, result.Same)
}

func TestCompareStyles_Symmetric(t *testing.T) {
	client := &fakeClient{}
	client.handler = styleServer(map[proto.DOMNodeID]map[string]string{
		1: {"color": "red", "display": "block", "opacity": "1"},
		2: {"color": "blue", "display": "block", "opacity": "0.5"},
	})
	sess := newTestManager().Get("page1", client)
	props := []string{"color", "display", "opacity"}

	forward, err := CompareStyles(sess, 1, 2, props)
	require.NoError(t, err)
	backward, err := CompareStyles(sess, 2, 1, props)
	require.NoError(t, err)

	require.Len(t, backward.Differences, len(forward.Differences))
	for name, diff := range forward.Differences {
		swapped, ok := backward.Differences[name]
		require.True(t, ok, "property %q differs in one direction only", name)
		assert.Equal(t, diff.Element1, swapped.Element2)
		assert.Equal(t, diff.Element2, swapped.Element1)
	}
	assert.Equal(t, forward.Same, backward.Same)
}

// Every requested property matching yields zero differences and a full same
// list.
func TestCompareStyles_AllEqual(t *testing.T) {
	styles := map[string]string{"color": "red", "display": "block", "width": "10px"}
	client := &fakeClient{}
	client.handler = styleServer(map[proto.DOMNodeID]map[string]string{
		1: styles, 2: styles,
	})
	sess := newTestManager().Get("page1", client)

	result, err := CompareStyles(sess, 1, 2, []string{"color", "display", "width"})
	require.NoError(t, err)

	assert.Empty(t, result.Differences)
	assert.Equal(t, []string{"color", "display", "width"}, result.Same)
}

func TestCompareStyles_DefaultPropertyList(t *testing.T) {
	client := &fakeClient{}
	client.handler = styleServer(map[proto.DOMNodeID]map[string]string{
		1: {"display": "block"},
		2: {"display": "flex"},
	})
	sess := newTestManager().Get("page1", client)

	result, err := CompareStyles(sess, 1, 2, nil)
	require.NoError(t, err)

	assert.Contains(t, result.Differences, "display")
	// Only properties with values on at least one side are reported.
	assert.Len(t, result.Differences, 1)
	assert.Empty(t, result.Same)
}

func TestCompareStyles_FetchesBothNodes(t *testing.T) {
	client := &fakeClient{}
	client.handler = styleServer(map[proto.DOMNodeID]map[string]string{
		1: {}, 2: {},
	})
	sess := newTestManager().Get("page1", client)

	_, err := CompareStyles(sess, 1, 2, []string{"color"})
	require.NoError(t, err)

	assert.Equal(t, 2, client.callCount("CSS.getComputedStyleForNode"))
}

package cdp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotPayload builds a DOMSnapshot.captureSnapshot response with one
// document of nodeCount synthetic element nodes.
func snapshotPayload(nodeCount int) []byte {
	strings := []string{"https://example.test/", "Example", "DIV"}
	nodes := map[string]any{
		"parentIndex":   make([]int, 0, nodeCount),
		"nodeType":      make([]int, 0, nodeCount),
		"nodeName":      make([]int, 0, nodeCount),
		"nodeValue":     make([]int, 0, nodeCount),
		"backendNodeId": make([]int, 0, nodeCount),
	}
	for i := 0; i < nodeCount; i++ {
		nodes["parentIndex"] = append(nodes["parentIndex"].([]int), i-1)
		nodes["nodeType"] = append(nodes["nodeType"].([]int), 1)
		nodes["nodeName"] = append(nodes["nodeName"].([]int), 2)
		nodes["nodeValue"] = append(nodes["nodeValue"].([]int), -1)
		nodes["backendNodeId"] = append(nodes["backendNodeId"].([]int), 100+i)
	}
	payload, _ := json.Marshal(map[string]any{
		"documents": []map[string]any{{
			"documentURL": 0,
			"title":       1,
			"nodes":       nodes,
		}},
		"strings": strings,
	})
	return payload
}

func snapshotHandler(nodeCount int) func(string, []byte) ([]byte, error) {
	return func(method string, _ []byte) ([]byte, error) {
		if method == "DOMSnapshot.captureSnapshot" {
			return snapshotPayload(nodeCount), nil
		}
		return []byte(`{}`), nil
	}
}

func TestCaptureSnapshot_SmallDocument(t *testing.T) {
	client := &fakeClient{}
	client.handler = snapshotHandler(3)
	sess := newTestManager().Get("page1", client)

	res, err := CaptureSnapshot(sess, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, client.callCount("DOMSnapshot.enable"))
	assert.False(t, res.Truncated)
	require.Len(t, res.Documents, 1)

	doc := res.Documents[0]
	assert.Equal(t, "https://example.test/", doc.URL)
	assert.Equal(t, "Example", doc.Title)
	assert.Equal(t, 3, doc.NodeCount)
	assert.False(t, doc.Truncated)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, SnapshotNode{
		BackendNodeID: 100,
		NodeType:      1,
		NodeName:      "DIV",
		ParentIndex:   -1,
	}, doc.Nodes[0])
	assert.Equal(t, 1, doc.Nodes[2].ParentIndex)
}

// Documents above the node cap keep their true node count but report only the
// capped prefix, and truncation is flagged at both levels.
func TestCaptureSnapshot_CapsNodes(t *testing.T) {
	client := &fakeClient{}
	client.handler = snapshotHandler(maxSnapshotNodes + 25)
	sess := newTestManager().Get("page1", client)

	res, err := CaptureSnapshot(sess, nil)
	require.NoError(t, err)

	require.Len(t, res.Documents, 1)
	doc := res.Documents[0]
	assert.Equal(t, maxSnapshotNodes+25, doc.NodeCount)
	assert.Len(t, doc.Nodes, maxSnapshotNodes)
	assert.True(t, doc.Truncated)
	assert.True(t, res.Truncated)
}

func TestCaptureSnapshot_ExactlyAtCapIsNotTruncated(t *testing.T) {
	client := &fakeClient{}
	client.handler = snapshotHandler(maxSnapshotNodes)
	sess := newTestManager().Get("page1", client)

	res, err := CaptureSnapshot(sess, nil)
	require.NoError(t, err)

	doc := res.Documents[0]
	assert.Len(t, doc.Nodes, maxSnapshotNodes)
	assert.False(t, doc.Truncated)
	assert.False(t, res.Truncated)
}

func TestStringAt(t *testing.T) {
	table := []string{"a", "b"}

	assert.Equal(t, "a", stringAt(table, 0))
	assert.Equal(t, "b", stringAt(table, 1))
	assert.Equal(t, "", stringAt(table, -1))
	assert.Equal(t, "", stringAt(table, 2))
}

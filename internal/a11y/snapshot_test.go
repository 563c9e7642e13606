package a11y

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haddadrm/chrome-devtools-mcp/internal/cdp"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []string
	tree  string
}

func (f *fakeClient) Call(_ context.Context, _, method string, _ interface{}) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.mu.Unlock()
	if method == "Accessibility.getFullAXTree" {
		return []byte(f.tree), nil
	}
	return []byte(`{}`), nil
}

func (f *fakeClient) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.calls {
		if m == method {
			n++
		}
	}
	return n
}

const smallTree = `{"nodes": [
	{"nodeId": "1", "ignored": false,
	 "role": {"type": "role", "value": "RootWebArea"},
	 "name": {"type": "computedString", "value": "Demo"},
	 "backendDOMNodeId": 10, "childIds": ["2", "3", "4"]},
	{"nodeId": "2", "ignored": false,
	 "role": {"type": "role", "value": "button"},
	 "name": {"type": "computedString", "value": "Submit"},
	 "backendDOMNodeId": 20, "childIds": []},
	{"nodeId": "3", "ignored": true,
	 "role": {"type": "role", "value": "button"},
	 "backendDOMNodeId": 30, "childIds": []},
	{"nodeId": "4", "ignored": false,
	 "role": {"type": "role", "value": "generic"},
	 "backendDOMNodeId": 40, "childIds": ["5"]},
	{"nodeId": "5", "ignored": false,
	 "role": {"type": "role", "value": "link"},
	 "name": {"type": "computedString", "value": "Docs"},
	 "backendDOMNodeId": 50, "childIds": []}
]}`

func newSnapshotter() *Snapshotter { return NewSnapshotter(zap.NewNop()) }

func sessionFor(client *fakeClient) *cdp.Session {
	return cdp.NewManager(zap.NewNop()).Get("page1", client)
}

func TestTake_MintsUIDsForVisibleNodes(t *testing.T) {
	client := &fakeClient{tree: smallTree}
	snaps := newSnapshotter()

	snap, err := snaps.Take(sessionFor(client), "page1")
	require.NoError(t, err)

	assert.Equal(t, 1, client.count("DOM.enable"))
	assert.Equal(t, 1, client.count("Accessibility.enable"))

	// RootWebArea, button and link render; the ignored button and the
	// generic wrapper do not.
	assert.Equal(t, 3, snap.UIDCount)
	assert.False(t, snap.Truncated)
	assert.Equal(t, 1, snap.Generation)
	assert.Contains(t, snap.Text, "[RootWebArea] Demo uid=1_1")
	assert.Contains(t, snap.Text, "[button] Submit uid=1_2")
	assert.Contains(t, snap.Text, "[link] Docs uid=1_3")
	assert.NotContains(t, snap.Text, "generic")
}

func TestTake_UIDsResolveThroughTable(t *testing.T) {
	client := &fakeClient{tree: smallTree}
	snaps := newSnapshotter()

	_, err := snaps.Take(sessionFor(client), "page1")
	require.NoError(t, err)

	table := snaps.Table("page1")
	id, ok := table.Lookup("1_2")
	require.True(t, ok)
	assert.EqualValues(t, 20, id)

	_, ok = table.Lookup("0_1")
	assert.False(t, ok)
}

// Each snapshot replaces the page's table wholesale; old-generation UIDs stop
// resolving.
func TestTake_NewSnapshotInvalidatesOldUIDs(t *testing.T) {
	client := &fakeClient{tree: smallTree}
	snaps := newSnapshotter()
	sess := sessionFor(client)

	_, err := snaps.Take(sess, "page1")
	require.NoError(t, err)
	second, err := snaps.Take(sess, "page1")
	require.NoError(t, err)

	assert.Equal(t, 2, second.Generation)

	table := snaps.Table("page1")
	_, ok := table.Lookup("1_2")
	assert.False(t, ok, "first-generation UID must not survive a second snapshot")
	_, ok = table.Lookup("2_2")
	assert.True(t, ok)
}

func TestTake_TablesArePerPage(t *testing.T) {
	client := &fakeClient{tree: smallTree}
	snaps := newSnapshotter()
	manager := cdp.NewManager(zap.NewNop())

	_, err := snaps.Take(manager.Get("page1", client), "page1")
	require.NoError(t, err)

	_, ok := snaps.Table("page2").Lookup("1_1")
	assert.False(t, ok)
}

func TestDrop_RemovesTable(t *testing.T) {
	client := &fakeClient{tree: smallTree}
	snaps := newSnapshotter()

	_, err := snaps.Take(sessionFor(client), "page1")
	require.NoError(t, err)
	snaps.Drop("page1")

	_, ok := snaps.Table("page1").Lookup("1_1")
	assert.False(t, ok)
}

func TestTable_MissingPageIsEmptyLookup(t *testing.T) {
	snaps := newSnapshotter()

	_, ok := snaps.Table("never-seen").Lookup("1_1")
	assert.False(t, ok)
}

func TestTake_NodesWithoutDOMBackingGetNoUID(t *testing.T) {
	client := &fakeClient{tree: `{"nodes": [
		{"nodeId": "1", "ignored": false,
		 "role": {"type": "role", "value": "alert"},
		 "name": {"type": "computedString", "value": "Saved"},
		 "childIds": []}
	]}`}
	snaps := newSnapshotter()

	snap, err := snaps.Take(sessionFor(client), "page1")
	require.NoError(t, err)

	assert.Equal(t, 0, snap.UIDCount)
	assert.Contains(t, snap.Text, "[alert] Saved")
	assert.NotContains(t, snap.Text, "uid=")
}

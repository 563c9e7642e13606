package cdp

import (
	"context"
	"encoding/json"
	"sync"
)

// fakeClient implements proto.Client against canned JSON responses, so the
// protocol paths can be exercised without a browser.
type fakeClient struct {
	mu      sync.Mutex
	calls   []string
	handler func(method string, params []byte) ([]byte, error)
}

func (f *fakeClient) Call(ctx context.Context, sessionID, method string, params interface{}) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.mu.Unlock()

	var raw []byte
	if params != nil {
		raw, _ = json.Marshal(params)
	}
	if f.handler == nil {
		return []byte(`{}`), nil
	}
	return f.handler(method, raw)
}

func (f *fakeClient) callCount(method string) int {
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

func (f *fakeClient) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

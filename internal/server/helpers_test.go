package server

import (
	"context"
	"fmt"
	"sync"
)

type call struct {
	method string
	params map[string]interface{}
}

type fakeCaller struct {
	mu      sync.Mutex
	calls   []call
	results map[string]map[string]interface{}
	fail    map[string]bool
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		results: make(map[string]map[string]interface{}),
		fail:    make(map[string]bool),
	}
}

func (f *fakeCaller) CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: method, params: params})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fail[method] {
		return nil, fmt.Errorf("server error: %s failed", method)
	}
	return f.results[method], nil
}

func (f *fakeCaller) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

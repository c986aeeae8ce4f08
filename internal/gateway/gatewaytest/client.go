// Package gatewaytest provides a scriptable in-memory gateway.Client for
// service tests.
package gatewaytest

import (
	"context"

	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
)

// Call records one gateway invocation.
type Call struct {
	Method  string
	Spec    gateway.Spec
	Table   string
	Patch   map[string]interface{}
	Filters []gateway.Filter
	Rows    interface{}
}

// Client implements gateway.Client by dispatching to optional stub
// functions and recording every call. Unstubbed methods succeed with
// zero results.
type Client struct {
	Calls []Call

	QueryFn         func(spec gateway.Spec, dest interface{}) error
	QueryCountFn    func(spec gateway.Spec, dest interface{}) (int64, error)
	QueryOneFn      func(spec gateway.Spec, dest interface{}) error
	QueryMaybeOneFn func(spec gateway.Spec, dest interface{}) (bool, error)
	InsertFn        func(table string, rows interface{}) error
	UpdateFn        func(table string, patch map[string]interface{}, filters []gateway.Filter) (int64, error)
	DeleteFn        func(table string, filters []gateway.Filter) (int64, error)
}

var _ gateway.Client = (*Client)(nil)

// CallsTo returns the recorded calls of one method.
func (c *Client) CallsTo(method string) []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

func (c *Client) Query(_ context.Context, spec gateway.Spec, dest interface{}) error {
	c.Calls = append(c.Calls, Call{Method: "query", Spec: spec})
	if c.QueryFn != nil {
		return c.QueryFn(spec, dest)
	}
	return nil
}

func (c *Client) QueryCount(_ context.Context, spec gateway.Spec, dest interface{}) (int64, error) {
	c.Calls = append(c.Calls, Call{Method: "query_count", Spec: spec})
	if c.QueryCountFn != nil {
		return c.QueryCountFn(spec, dest)
	}
	return 0, nil
}

func (c *Client) QueryOne(_ context.Context, spec gateway.Spec, dest interface{}) error {
	c.Calls = append(c.Calls, Call{Method: "query_one", Spec: spec})
	if c.QueryOneFn != nil {
		return c.QueryOneFn(spec, dest)
	}
	return gateway.ErrNotFound
}

func (c *Client) QueryMaybeOne(_ context.Context, spec gateway.Spec, dest interface{}) (bool, error) {
	c.Calls = append(c.Calls, Call{Method: "query_maybe_one", Spec: spec})
	if c.QueryMaybeOneFn != nil {
		return c.QueryMaybeOneFn(spec, dest)
	}
	return false, nil
}

func (c *Client) Insert(_ context.Context, table string, rows interface{}) error {
	c.Calls = append(c.Calls, Call{Method: "insert", Table: table, Rows: rows})
	if c.InsertFn != nil {
		return c.InsertFn(table, rows)
	}
	return nil
}

func (c *Client) Update(_ context.Context, table string, patch map[string]interface{}, filters ...gateway.Filter) (int64, error) {
	c.Calls = append(c.Calls, Call{Method: "update", Table: table, Patch: patch, Filters: filters})
	if c.UpdateFn != nil {
		return c.UpdateFn(table, patch, filters)
	}
	return 1, nil
}

func (c *Client) Delete(_ context.Context, table string, filters ...gateway.Filter) (int64, error) {
	c.Calls = append(c.Calls, Call{Method: "delete", Table: table, Filters: filters})
	if c.DeleteFn != nil {
		return c.DeleteFn(table, filters)
	}
	return 1, nil
}

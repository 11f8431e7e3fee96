// Package odoo wraps the XML-RPC transport to an Odoo instance. It owns the
// cached authentication uid and the error classification the rest of the
// bridge relies on: a stale session triggers exactly one re-authentication
// retry, a call that outlives its deadline is retried once, and the known
// benign empty-acknowledgment fault is distinguishable from genuine failure.
package odoo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"
	"github.com/rs/zerolog"

	"github.com/aiqso/odoo-bridge/internal/config"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

// ErrAuthFailed is returned when Odoo rejects the configured credentials.
var ErrAuthFailed = errors.New("odoo: authentication failed, check ODOO_USERNAME and ODOO_API_KEY")

const defaultTimeout = 30 * time.Second

// Client is the process-wide connection to one Odoo instance. It is safe for
// concurrent use.
type Client struct {
	cfg    config.OdooConfig
	common *xmlrpc.Client
	object *xmlrpc.Client
	log    zerolog.Logger

	mu  sync.Mutex
	uid int64
}

// NewClient validates the connection settings and constructs the endpoint
// proxies. No network call is made until the first operation.
func NewClient(cfg config.OdooConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	common, err := xmlrpc.NewClient(cfg.URL+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("odoo: create common endpoint client: %w", err)
	}
	object, err := xmlrpc.NewClient(cfg.URL+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, fmt.Errorf("odoo: create object endpoint client: %w", err)
	}

	return &Client{
		cfg:    cfg,
		common: common,
		object: object,
		log:    logger.WithComponent("odoo"),
	}, nil
}

// Authenticate returns the cached uid, performing the authentication call on
// first use.
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uid != 0 {
		return c.uid, nil
	}
	return c.authenticateLocked(ctx)
}

func (c *Client) authenticateLocked(ctx context.Context) (int64, error) {
	var result interface{}
	args := []interface{}{c.cfg.Database, c.cfg.Username, c.cfg.APIKey, map[string]interface{}{}}
	if err := c.call(ctx, c.common, "authenticate", args, &result); err != nil {
		return 0, fmt.Errorf("odoo: authenticate: %w", err)
	}

	// Odoo returns the numeric uid on success and boolean false on bad
	// credentials.
	switch v := result.(type) {
	case int64:
		c.uid = v
	case int:
		c.uid = int64(v)
	default:
		return 0, ErrAuthFailed
	}

	c.log.Debug().Int64("uid", c.uid).Msg("authenticated")
	return c.uid, nil
}

// invalidate drops the cached uid so the next call re-authenticates.
func (c *Client) invalidate() {
	c.mu.Lock()
	c.uid = 0
	c.mu.Unlock()
}

// ExecuteKw dispatches a model method through execute_kw. On an access-denied
// fault the cached uid is dropped and the call retried once with a fresh
// authentication; a second failure surfaces as fatal.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []interface{}, kw map[string]interface{}) (interface{}, error) {
	result, err := c.executeOnce(ctx, model, method, args, kw)
	if err != nil && IsAccessDenied(err) {
		c.log.Warn().Str("model", model).Str("method", method).Msg("access denied, re-authenticating")
		c.invalidate()
		result, err = c.executeOnce(ctx, model, method, args, kw)
	}
	return result, err
}

func (c *Client) executeOnce(ctx context.Context, model, method string, args []interface{}, kw map[string]interface{}) (interface{}, error) {
	uid, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = []interface{}{}
	}
	if kw == nil {
		kw = map[string]interface{}{}
	}

	params := []interface{}{c.cfg.Database, uid, c.cfg.APIKey, model, method, args, kw}
	var result interface{}
	if err := c.call(ctx, c.object, "execute_kw", params, &result); err != nil {
		return nil, fmt.Errorf("odoo: %s.%s: %w", model, method, err)
	}
	return result, nil
}

// Version reads the server version from the common endpoint. It does not
// require credentials and is used as a liveness probe.
func (c *Client) Version(ctx context.Context) (string, error) {
	var result interface{}
	if err := c.call(ctx, c.common, "version", []interface{}{}, &result); err != nil {
		return "", fmt.Errorf("odoo: version: %w", err)
	}
	if info, ok := result.(map[string]interface{}); ok {
		if v, ok := info["server_version"].(string); ok {
			return v, nil
		}
	}
	return "unknown", nil
}

// call runs one XML-RPC call under the configured deadline. An expired
// deadline is retried once, then treated as fatal.
func (c *Client) call(ctx context.Context, client *xmlrpc.Client, method string, args interface{}, reply *interface{}) error {
	err := c.callOnce(ctx, client, method, args, reply)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		c.log.Warn().Str("method", method).Msg("call timed out, retrying once")
		err = c.callOnce(ctx, client, method, args, reply)
	}
	return err
}

func (c *Client) callOnce(ctx context.Context, client *xmlrpc.Client, method string, args interface{}, reply *interface{}) error {
	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Each attempt decodes into its own value. An attempt abandoned at the
	// deadline may still complete later and must not overwrite the reply a
	// retry has already produced. The rpc call runs in a goroutine because
	// the codec performs the HTTP round trip synchronously inside send.
	type outcome struct {
		result interface{}
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		var out interface{}
		call := <-client.Go(method, args, &out, nil).Done
		done <- outcome{result: out, err: call.Error}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case o := <-done:
		if o.err != nil {
			return o.err
		}
		*reply = o.result
		return nil
	}
}

// Search returns the ids matching an Odoo domain expression.
func (c *Client) Search(ctx context.Context, model string, domain []interface{}, kw map[string]interface{}) ([]int64, error) {
	result, err := c.ExecuteKw(ctx, model, "search", []interface{}{domain}, kw)
	if err != nil {
		return nil, err
	}
	return toInt64Slice(result), nil
}

// SearchRead searches and reads records in a single round trip.
func (c *Client) SearchRead(ctx context.Context, model string, domain []interface{}, fields []string, kw map[string]interface{}) ([]map[string]interface{}, error) {
	if kw == nil {
		kw = map[string]interface{}{}
	}
	if len(fields) > 0 {
		kw["fields"] = fields
	}
	result, err := c.ExecuteKw(ctx, model, "search_read", []interface{}{domain}, kw)
	if err != nil {
		return nil, err
	}
	return toRecords(result), nil
}

// SearchCount counts records matching a domain.
func (c *Client) SearchCount(ctx context.Context, model string, domain []interface{}) (int, error) {
	result, err := c.ExecuteKw(ctx, model, "search_count", []interface{}{domain}, nil)
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	}
	return 0, nil
}

// Create creates one record and returns its id.
func (c *Client) Create(ctx context.Context, model string, values map[string]interface{}) (int64, error) {
	result, err := c.ExecuteKw(ctx, model, "create", []interface{}{values}, nil)
	if err != nil {
		return 0, err
	}
	// Some Odoo versions answer with a one-element array.
	if ids := toInt64Slice(result); len(ids) > 0 {
		return ids[0], nil
	}
	switch v := result.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	}
	return 0, fmt.Errorf("odoo: %s.create returned unexpected result %T", model, result)
}

// Write updates records in place.
func (c *Client) Write(ctx context.Context, model string, ids []int64, values map[string]interface{}) error {
	_, err := c.ExecuteKw(ctx, model, "write", []interface{}{ids, values}, nil)
	return err
}

// Read reads the requested fields of the given records.
func (c *Client) Read(ctx context.Context, model string, ids []int64, fields []string) ([]map[string]interface{}, error) {
	kw := map[string]interface{}{}
	if len(fields) > 0 {
		kw["fields"] = fields
	}
	result, err := c.ExecuteKw(ctx, model, "read", []interface{}{ids}, kw)
	if err != nil {
		return nil, err
	}
	return toRecords(result), nil
}

// Call dispatches a model action method (action_post, reconcile, ...) on the
// given record ids.
func (c *Client) Call(ctx context.Context, model, method string, ids []int64) error {
	_, err := c.ExecuteKw(ctx, model, method, []interface{}{ids}, nil)
	return err
}

func toInt64Slice(v interface{}) []int64 {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case int64:
			out = append(out, n)
		case int:
			out = append(out, int64(n))
		}
	}
	return out
}

func toRecords(v interface{}) []map[string]interface{} {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]interface{}); ok {
			out = append(out, rec)
		}
	}
	return out
}

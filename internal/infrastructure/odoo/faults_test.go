package odoo

import (
	"errors"
	"fmt"
	"net/rpc"
	"testing"

	"github.com/kolo/xmlrpc"
	"github.com/stretchr/testify/assert"
)

func TestIsNilAck(t *testing.T) {
	nilAck := xmlrpc.FaultError{
		Code:   1,
		String: "cannot marshal None unless allow_none is enabled",
	}
	assert.True(t, IsNilAck(nilAck))
	assert.True(t, IsNilAck(fmt.Errorf("odoo: account.payment.action_post: %w", nilAck)))

	// The codec reports server faults as rpc.ServerError strings, which is
	// the shape that actually crosses the wire.
	flattened := rpc.ServerError("Fault(1): cannot marshal None unless allow_none is enabled")
	assert.True(t, IsNilAck(flattened))
	assert.True(t, IsNilAck(fmt.Errorf("odoo: account.payment.action_post: %w", flattened)))

	genuine := xmlrpc.FaultError{
		Code:   2,
		String: "ValidationError: You need to add a line before posting.",
	}
	assert.False(t, IsNilAck(genuine))
	assert.False(t, IsNilAck(rpc.ServerError("Fault(2): ValidationError: You need to add a line before posting.")))
	assert.False(t, IsNilAck(errors.New("connection refused")))
	assert.False(t, IsNilAck(nil))
}

func TestIsAccessDenied(t *testing.T) {
	denied := xmlrpc.FaultError{Code: 3, String: "Access Denied"}
	assert.True(t, IsAccessDenied(denied))
	assert.True(t, IsAccessDenied(fmt.Errorf("odoo: res.partner.search: %w", denied)))
	assert.True(t, IsAccessDenied(xmlrpc.FaultError{Code: 3, String: "Session expired"}))

	flattened := rpc.ServerError("Fault(3): Access Denied")
	assert.True(t, IsAccessDenied(flattened))
	assert.True(t, IsAccessDenied(fmt.Errorf("odoo: res.partner.search: %w", flattened)))

	assert.False(t, IsAccessDenied(xmlrpc.FaultError{Code: 1, String: "cannot marshal None"}))
	assert.False(t, IsAccessDenied(errors.New("Access Denied"))) // not a fault
}

func TestIsFault(t *testing.T) {
	assert.True(t, IsFault(xmlrpc.FaultError{Code: 1, String: "x"}))
	assert.True(t, IsFault(rpc.ServerError("Fault(1): x")))
	assert.False(t, IsFault(rpc.ServerError("reading body EOF")))
	assert.False(t, IsFault(errors.New("dial tcp: connection refused")))
}

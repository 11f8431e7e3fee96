package odoo

import (
	"errors"
	"net/rpc"
	"strings"

	"github.com/kolo/xmlrpc"
)

// faultText extracts the fault string carried by err, if any. The xmlrpc
// codec flattens a server <fault> into the net/rpc response error string
// before net/rpc hands it back, so a real fault arrives as an
// rpc.ServerError reading "Fault(code): message", not as an
// xmlrpc.FaultError value. Both shapes are recognized.
func faultText(err error) (string, bool) {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return fault.String, true
	}
	var server rpc.ServerError
	if errors.As(err, &server) && strings.Contains(string(server), "Fault(") {
		return string(server), true
	}
	return "", false
}

// IsNilAck reports whether err is the known benign fault Odoo produces when a
// handler returns None: the XML-RPC layer cannot marshal it and faults even
// though the action itself succeeded. Seen on account.payment action_post and
// account.move.line reconcile. Callers tolerate it and verify the outcome by
// re-reading state where possible.
func IsNilAck(err error) bool {
	text, ok := faultText(err)
	return ok && strings.Contains(text, "cannot marshal None")
}

// IsAccessDenied reports whether err is an authentication rejection from the
// server, which means the cached uid went stale and a single fresh
// authentication should be attempted.
func IsAccessDenied(err error) bool {
	text, ok := faultText(err)
	if !ok {
		return false
	}
	return strings.Contains(text, "Access Denied") ||
		strings.Contains(text, "Session expired")
}

// IsFault reports whether err is an XML-RPC fault from the server, as opposed
// to a transport or decoding error.
func IsFault(err error) bool {
	_, ok := faultText(err)
	return ok
}

// Package cdp implements the node-resolution and DOM traversal layer between
// the agent-facing tools and the Chrome DevTools Protocol: per-page session
// bookkeeping with idempotent domain enabling, UID-to-node resolution, bounded
// DOM tree formatting, computed-style comparison and the small geometry/style
// helpers shared by the inspection tools.
package cdp

import (
	"errors"
	"fmt"
)

// ErrKind is a closed set of failure categories. Tool handlers branch on the
// kind instead of matching error message substrings.
type ErrKind int

const (
	// KindUnknownUID means the UID is not present in the snapshot table, or is
	// present without a usable backend node id. Not retryable without taking a
	// fresh snapshot.
	KindUnknownUID ErrKind = iota
	// KindResolutionFailure means a backend node id could not be converted to
	// a session-scoped node id (node detached, stale, or from another
	// document). Not retryable without a fresh UID.
	KindResolutionFailure
	// KindOptionalDataUnavailable marks a failed enrichment call (box model,
	// outer HTML, attributes) on a node that otherwise resolved fine. Callers
	// degrade the affected field instead of failing the request.
	KindOptionalDataUnavailable
	// KindConfirmationRequired is returned by destructive operations invoked
	// without an explicit confirm flag, before any side effect.
	KindConfirmationRequired
	// KindProtocol covers every other CDP-level failure, propagated unchanged.
	KindProtocol
)

func (k ErrKind) String() string {
	switch k {
	case KindUnknownUID:
		return "unknown_uid"
	case KindResolutionFailure:
		return "resolution_failure"
	case KindOptionalDataUnavailable:
		return "optional_data_unavailable"
	case KindConfirmationRequired:
		return "confirmation_required"
	default:
		return "protocol_error"
	}
}

// Error is the tagged error carried by everything in this package.
type Error struct {
	Kind ErrKind
	UID  string // set for UID-related failures
	msg  string
	err  error
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.err }

// Is lets errors.Is match two *Error values by kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// NewUnknownUID reports a UID missing from the snapshot table. The message is
// what the agent sees, so it spells out the recovery step.
func NewUnknownUID(uid string) *Error {
	return &Error{
		Kind: KindUnknownUID,
		UID:  uid,
		msg:  fmt.Sprintf("Could not find element with UID %q. Make sure to call take_snapshot first.", uid),
	}
}

// NewResolutionFailure reports a backend node id the browser refused to push
// into the current session.
func NewResolutionFailure(uid string, backendNodeID int) *Error {
	return &Error{
		Kind: KindResolutionFailure,
		UID:  uid,
		msg: fmt.Sprintf("Element with UID %q (backend node %d) is no longer attached to the document. "+
			"Take a new snapshot and retry with a fresh UID.", uid, backendNodeID),
	}
}

// NewConfirmationRequired guards destructive operations.
func NewConfirmationRequired(action string) *Error {
	return &Error{
		Kind: KindConfirmationRequired,
		msg:  fmt.Sprintf("%s is destructive. Pass confirm=true to proceed.", action),
	}
}

func newOptionalUnavailable(what string, err error) *Error {
	return &Error{
		Kind: KindOptionalDataUnavailable,
		msg:  fmt.Sprintf("%s unavailable: %v", what, err),
		err:  err,
	}
}

func newProtocolError(op string, err error) *Error {
	return &Error{
		Kind: KindProtocol,
		msg:  fmt.Sprintf("%s: %v", op, err),
		err:  err,
	}
}

// KindOf extracts the kind from any error produced by this package.
// Unrecognized errors report KindProtocol.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindProtocol
}

package cdp

import "github.com/go-rod/rod/lib/proto"

// UIDLookup is the narrow interface to the external snapshot table: it maps
// an agent-visible UID to the stable backend node id recorded by the last
// accessibility snapshot. The zero backend node id means "unknown".
type UIDLookup interface {
	Lookup(uid string) (proto.DOMBackendNodeID, bool)
}

// ResolveUID turns an agent-visible UID into a node id usable on this
// session. The table lookup happens before any protocol round trip: an
// unknown UID costs zero CDP calls.
func ResolveUID(session *Session, table UIDLookup, uid string) (proto.DOMNodeID, proto.DOMBackendNodeID, error) {
	backendID, ok := table.Lookup(uid)
	if !ok || backendID == 0 {
		return 0, 0, NewUnknownUID(uid)
	}
	nodeID, err := PushNode(session, backendID)
	if err != nil {
		if e, ok := err.(*Error); ok && e.Kind == KindResolutionFailure {
			return 0, backendID, NewResolutionFailure(uid, int(backendID))
		}
		return 0, backendID, err
	}
	return nodeID, backendID, nil
}

// PushNode converts a backend node id into a node id scoped to this session
// by pushing a single-element batch to the frontend. The browser reports an
// unresolvable node (detached, never existed, or from a stale document) as a
// zero node id; that is surfaced as a resolution failure, never tolerated
// silently. The returned node id is valid only for this session and must be
// re-derived after a session change.
func PushNode(session *Session, backendNodeID proto.DOMBackendNodeID) (proto.DOMNodeID, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return 0, err
	}

	res, err := proto.DOMPushNodesByBackendIDsToFrontend{
		BackendNodeIDs: []proto.DOMBackendNodeID{backendNodeID},
	}.Call(session.Client())
	if err != nil {
		return 0, newProtocolError("push backend node id", err)
	}

	if len(res.NodeIDs) == 0 || res.NodeIDs[0] == 0 {
		return 0, &Error{
			Kind: KindResolutionFailure,
			msg:  "backend node id could not be resolved in this session",
		}
	}
	return res.NodeIDs[0], nil
}

package cdp

import (
	"errors"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Domain names a CDP domain that must be enabled before its commands work.
type Domain string

const (
	DomainDOM           Domain = "DOM"
	DomainCSS           Domain = "CSS"
	DomainOverlay       Domain = "Overlay"
	DomainAccessibility Domain = "Accessibility"
	DomainDOMDebugger   Domain = "DOMDebugger"
	DomainDOMSnapshot   Domain = "DOMSnapshot"
)

// Session is one CDP channel bound to a single page, plus the bookkeeping of
// which domains have been enabled on it. Enabled-domain state is never shared
// between sessions. A Session is safe for concurrent use.
type Session struct {
	client proto.Client
	log    *zap.Logger
	scoped bool
	settle time.Duration

	mu       sync.Mutex
	enabled  map[Domain]bool
	inflight map[Domain]chan struct{}
	released bool
}

func newSession(client proto.Client, log *zap.Logger, scoped bool, settle time.Duration) *Session {
	return &Session{
		client:   client,
		log:      log,
		scoped:   scoped,
		settle:   settle,
		enabled:  make(map[Domain]bool),
		inflight: make(map[Domain]chan struct{}),
	}
}

// Client exposes the underlying CDP channel for typed proto calls.
func (s *Session) Client() proto.Client { return s.client }

// EnsureEnabled issues the domain's enable command unless this session has
// already enabled it. Success is recorded before returning; failure leaves the
// domain unrecorded so a later call can retry, and the error propagates
// unchanged. Concurrent callers for the same domain trigger a single enable
// command: the second caller waits on the first caller's in-flight attempt.
func (s *Session) EnsureEnabled(domain Domain) error {
	for {
		s.mu.Lock()
		if s.released {
			s.mu.Unlock()
			return newProtocolError("ensure enabled", errors.New("session already released"))
		}
		if s.enabled[domain] {
			s.mu.Unlock()
			return nil
		}
		if ch, ok := s.inflight[domain]; ok {
			s.mu.Unlock()
			<-ch
			// Re-check: the attempt may have failed, in which case this
			// caller becomes the next one to try.
			continue
		}
		ch := make(chan struct{})
		s.inflight[domain] = ch
		s.mu.Unlock()

		err := enableDomain(s.client, domain)

		s.mu.Lock()
		if err == nil {
			s.enabled[domain] = true
		}
		delete(s.inflight, domain)
		close(ch)
		s.mu.Unlock()

		if err != nil {
			return newProtocolError("enable "+string(domain), err)
		}
		s.log.Debug("domain enabled", zap.String("domain", string(domain)))
		return nil
	}
}

// enableDomain maps a domain name to its typed enable command. DOMDebugger
// defines no enable command in CDP; requiring it is recorded without a wire
// call so dependent helpers can still express the dependency.
func enableDomain(client proto.Client, domain Domain) error {
	switch domain {
	case DomainDOM:
		return proto.DOMEnable{}.Call(client)
	case DomainCSS:
		return proto.CSSEnable{}.Call(client)
	case DomainOverlay:
		return proto.OverlayEnable{}.Call(client)
	case DomainAccessibility:
		return proto.AccessibilityEnable{}.Call(client)
	case DomainDOMSnapshot:
		return proto.DOMSnapshotEnable{}.Call(client)
	case DomainDOMDebugger:
		return nil
	default:
		return errors.New("unknown domain " + string(domain))
	}
}

// Enabled reports whether this session has enabled the domain itself.
func (s *Session) Enabled(domain Domain) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled[domain]
}

// SettleDelay is the pause granted to out-of-band child-node delivery before
// the tree walker reads a freshly populated node.
func (s *Session) SettleDelay() time.Duration { return s.settle }

// Release ends a scoped session: further EnsureEnabled calls fail and the
// enabled-domain state is dropped. Page-bound sessions are released through
// Manager.Remove when their page closes; calling Release on them directly is
// a no-op.
func (s *Session) Release() {
	if !s.scoped {
		return
	}
	s.mu.Lock()
	s.released = true
	s.enabled = make(map[Domain]bool)
	s.mu.Unlock()
}

// Manager owns one Session per page, keyed by target id. Entries are removed
// by an explicit Remove when the page closes; there is no garbage-collector
// driven cleanup.
type Manager struct {
	log    *zap.Logger
	settle time.Duration

	mu       sync.Mutex
	sessions map[proto.TargetTargetID]*Session
}

// Option tweaks Manager construction.
type Option func(*Manager)

// WithSettleDelay overrides the tree walker's child-node settling delay for
// every session this manager creates.
func WithSettleDelay(d time.Duration) Option {
	return func(m *Manager) { m.settle = d }
}

func NewManager(log *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		log:      log,
		settle:   defaultSettleDelay,
		sessions: make(map[proto.TargetTargetID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the session for the target, creating it on first use. Creation
// is serialized under the manager lock, so two concurrent callers for the
// same page always receive the same session.
func (m *Manager) Get(targetID proto.TargetTargetID, client proto.Client) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[targetID]; ok {
		return s
	}
	s := newSession(client, m.log.With(zap.String("target", string(targetID))), false, m.settle)
	m.sessions[targetID] = s
	m.log.Debug("session created", zap.String("target", string(targetID)))
	return s
}

// Remove drops the session for a closed page. The page lifecycle owner must
// call this synchronously on close.
func (m *Manager) Remove(targetID proto.TargetTargetID) {
	m.mu.Lock()
	s, ok := m.sessions[targetID]
	delete(m.sessions, targetID)
	m.mu.Unlock()
	if ok {
		s.mu.Lock()
		s.released = true
		s.enabled = make(map[Domain]bool)
		s.mu.Unlock()
		m.log.Debug("session removed", zap.String("target", string(targetID)))
	}
}

// Scoped creates a short-lived session that is never cached. It shares the
// caller's CDP channel: what is isolated is the enabled-domain bookkeeping,
// not the transport, so domains it enables stay enabled on the browser side.
// The caller must call Release on every exit path.
func (m *Manager) Scoped(client proto.Client) *Session {
	return newSession(client, m.log.With(zap.Bool("scoped", true)), true, m.settle)
}

// Len reports how many page-bound sessions are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

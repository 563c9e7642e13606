package cdp

import (
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
	"go.uber.org/zap"
)

// defaultHighlightConfig is the fixed visual style for element highlights,
// matching the DevTools inspect-mode palette.
func defaultHighlightConfig() *proto.OverlayHighlightConfig {
	return &proto.OverlayHighlightConfig{
		ShowInfo:     true,
		ContentColor: &proto.DOMRGBA{R: 111, G: 168, B: 220, A: gson.Num(0.66)},
		PaddingColor: &proto.DOMRGBA{R: 147, G: 196, B: 125, A: gson.Num(0.55)},
		BorderColor:  &proto.DOMRGBA{R: 255, G: 229, B: 153, A: gson.Num(0.66)},
		MarginColor:  &proto.DOMRGBA{R: 246, G: 178, B: 107, A: gson.Num(0.66)},
	}
}

// HighlightHandle cancels one scheduled auto-hide. Cancel is safe to call at
// any time, including after the timer fired.
type HighlightHandle struct {
	timer *time.Timer
}

// Cancel stops the pending auto-hide, if it has not fired yet.
func (h *HighlightHandle) Cancel() {
	if h != nil && h.timer != nil {
		h.timer.Stop()
	}
}

// Highlight paints the overlay for the node. When duration > 0 an auto-hide
// is scheduled; each call gets its own cancelable timer and earlier timers
// are deliberately left running, so overlapping highlights may hide each
// other early. The eventual hide tolerates "nothing to highlight": its
// protocol error is swallowed, never surfaced.
func Highlight(session *Session, log *zap.Logger, backendNodeID proto.DOMBackendNodeID, duration time.Duration) (*HighlightHandle, error) {
	if err := session.EnsureEnabled(DomainDOM); err != nil {
		return nil, err
	}
	if err := session.EnsureEnabled(DomainOverlay); err != nil {
		return nil, err
	}

	err := proto.OverlayHighlightNode{
		HighlightConfig: defaultHighlightConfig(),
		BackendNodeID:   backendNodeID,
	}.Call(session.Client())
	if err != nil {
		return nil, newProtocolError("highlight node", err)
	}

	if duration <= 0 {
		return &HighlightHandle{}, nil
	}

	client := session.Client()
	timer := time.AfterFunc(duration, func() {
		if err := (proto.OverlayHideHighlight{}).Call(client); err != nil {
			log.Debug("auto-hide highlight failed (ignored)", zap.Error(err))
		}
	})
	return &HighlightHandle{timer: timer}, nil
}

// HideHighlight clears the overlay immediately. A missing highlight is not an
// error.
func HideHighlight(session *Session, log *zap.Logger) error {
	if err := session.EnsureEnabled(DomainOverlay); err != nil {
		return err
	}
	if err := (proto.OverlayHideHighlight{}).Call(session.Client()); err != nil {
		log.Debug("hide highlight failed (ignored)", zap.Error(err))
	}
	return nil
}

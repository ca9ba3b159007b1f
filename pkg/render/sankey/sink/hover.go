package sink

import "sync"

// HoverState is the highlight shared by every diagram drawn on one surface.
// A caller creates one and passes it to each render; hovering a node in one
// diagram then highlights that node wherever it appears. The zero value has
// nothing highlighted. HoverState is safe for concurrent use.
type HoverState struct {
	mu   sync.RWMutex
	node string
	band int // input edge index + 1; 0 means none
}

// NewHoverState returns an empty hover state.
func NewHoverState() *HoverState { return &HoverState{} }

// SetNode highlights a node and clears any band highlight.
func (h *HoverState) SetNode(id string) {
	h.mu.Lock()
	h.node, h.band = id, 0
	h.mu.Unlock()
}

// SetBand highlights the band of input edge i and clears any node highlight.
func (h *HoverState) SetBand(i int) {
	h.mu.Lock()
	h.node, h.band = "", i+1
	h.mu.Unlock()
}

func (h *HoverState) Clear() {
	h.mu.Lock()
	h.node, h.band = "", 0
	h.mu.Unlock()
}

// Node returns the highlighted node.
func (h *HoverState) Node() (string, bool) {
	if h == nil {
		return "", false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.node, h.node != ""
}

// Band returns the highlighted band index.
func (h *HoverState) Band() (int, bool) {
	if h == nil {
		return -1, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.band - 1, h.band > 0
}

// highlighted reports whether band i from→to should be drawn highlighted.
func (h *HoverState) highlighted(i int, from, to string) bool {
	if b, ok := h.Band(); ok {
		return b == i
	}
	if n, ok := h.Node(); ok {
		return n == from || n == to
	}
	return false
}

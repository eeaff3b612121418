package notify

// Event names dispatched by a Hub.
const (
	// EventBrushChanged fires whenever a brush's geometry or texture
	// assignment changes. The event payload is the brush's owner-defined
	// identifier, not a pointer to the brush itself, so subscribers never
	// need to import the brush package.
	EventBrushChanged = "brush.changed"
)

// Hub fans a brush's change notifications out to any number of
// subscribers (an inspector panel, a renderer, an undo stack) without the
// brush package importing any of them.
type Hub struct {
	Dispatcher
}

// NewHub creates and returns a ready to use notification hub.
func NewHub() *Hub {

	h := new(Hub)
	h.Initialize()
	return h
}

// NotifyBrushChanged dispatches EventBrushChanged with the given brush id.
func (h *Hub) NotifyBrushChanged(brushID uint64) {

	h.Dispatch(EventBrushChanged, brushID)
}

// OnBrushChanged subscribes cb to EventBrushChanged.
func (h *Hub) OnBrushChanged(id interface{}, cb func(brushID uint64)) {

	h.SubscribeID(EventBrushChanged, id, func(evname string, ev interface{}) {
		cb(ev.(uint64))
	})
}

package session

import (
	"errors"
	"sync"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/websocket"
)

// Connection states of one participant's session.
const (
	StateInitializing = "INITIALIZING"
	StateConnecting   = "CONNECTING"
	StateConnected    = "CONNECTED"
	StateDisconnected = "DISCONNECTED"
)

var ErrNoCredential = errors.New("no join credential resolved")

// Snapshot is the consistent view of session state handed to subscribers.
// Every sibling surface (stage, sidebar, overlays) reads from the same
// snapshot instead of ambient shared state.
type Snapshot struct {
	ConnState     string
	Capabilities  Capabilities
	Feed          FeedLayout
	Pointer       *websocket.PointerPayload
	Countdown     *websocket.CountdownPayload
	Transcribing  bool
	AudioOnly     bool
	ScopeItems    []*entity.ScopeItem
	TerminalError error
}

// Controller owns the UI-relevant state of one participant in one session.
// It is bound to a single connection: state is never shared across tabs or
// processes. All mutations are serialized by the internal lock; observers
// get snapshots over buffered channels and lagging observers are skipped.
type Controller struct {
	mode string
	role string

	mu           sync.Mutex
	connState    string
	credential   string
	terminalErr  error
	tracks       TrackState
	transcribing bool
	audioOnly    bool
	items        []*entity.ScopeItem
	overlays     *overlayStore

	subMu       sync.Mutex
	subscribers []chan Snapshot
}

// NewController binds a controller to a resolved mode and role. SELF_SERVE
// forces the sole participant into the host-equivalent role.
func NewController(mode, role string) *Controller {
	if mode == constant.SessionModeSelfServe {
		role = constant.RoleHost
	}
	return &Controller{
		mode:      mode,
		role:      role,
		connState: StateInitializing,
		overlays:  newOverlayStore(),
	}
}

func (c *Controller) Mode() string { return c.mode }
func (c *Controller) Role() string { return c.role }

// SetCredential records the resolved join credential and moves the
// controller out of INITIALIZING. Without one the controller must never
// attempt to join the transport.
func (c *Controller) SetCredential(token string) {
	c.mu.Lock()
	c.credential = token
	c.terminalErr = nil
	c.connState = StateConnecting
	c.mu.Unlock()
	c.notify()
}

// FailCredential marks the join attempt terminally failed. The controller
// stays blocked until a fresh credential arrives.
func (c *Controller) FailCredential(err error) {
	c.mu.Lock()
	c.credential = ""
	c.terminalErr = err
	c.connState = StateInitializing
	c.mu.Unlock()
	c.notify()
}

// SetConnected transitions into the live state. Returns ErrNoCredential if
// no credential was resolved for this attempt.
func (c *Controller) SetConnected() error {
	c.mu.Lock()
	if c.credential == "" {
		c.mu.Unlock()
		return ErrNoCredential
	}
	c.connState = StateConnected
	c.mu.Unlock()
	c.notify()
	return nil
}

// SetDisconnected drops the connection state and clears every ephemeral
// overlay. No control message is assumed delivered across a reconnect.
func (c *Controller) SetDisconnected() {
	c.mu.Lock()
	c.connState = StateDisconnected
	c.overlays.Clear()
	c.mu.Unlock()
	c.notify()
}

// SetTracks updates media track presence as reported by the transport.
func (c *Controller) SetTracks(tracks TrackState) {
	c.mu.Lock()
	c.tracks = tracks
	c.mu.Unlock()
	c.notify()
}

// SetAudioOnly flags the degraded mode entered when the client's camera
// permission is denied. The session continues; the host sees the flag.
func (c *Controller) SetAudioOnly(audioOnly bool) {
	c.mu.Lock()
	c.audioOnly = audioOnly
	c.mu.Unlock()
	c.notify()
}

// ApplyPointer replaces the pointer annotation. Replaying the same payload
// any number of times lands on the same position.
func (c *Controller) ApplyPointer(p websocket.PointerPayload) {
	c.overlays.SetPointer(p)
	c.notify()
}

// SetMockup shows the broadcast design image; empty url clears it.
func (c *Controller) SetMockup(url string) {
	c.overlays.SetMockup(url)
	c.notify()
}

// ApplyCountdown mirrors the capture countdown overlay.
func (c *Controller) ApplyCountdown(p websocket.CountdownPayload) {
	c.overlays.SetCountdown(p)
	c.notify()
}

// ToggleTranscription flips the local extraction-pipeline flag. This is
// controller-local state, not a wire message.
func (c *Controller) ToggleTranscription() bool {
	c.mu.Lock()
	c.transcribing = !c.transcribing
	v := c.transcribing
	c.mu.Unlock()
	c.notify()
	return v
}

// AppendScopeItem adds a freshly streamed item to the append-only session
// list. No dedup beyond arrival order.
func (c *Controller) AppendScopeItem(item *entity.ScopeItem) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	c.notify()
}

// Snapshot builds a consistent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	mockupUrl, _ := c.overlays.Mockup()

	snap := Snapshot{
		ConnState:     c.connState,
		Capabilities:  CapabilitiesFor(c.mode, c.role),
		Feed:          SelectFeed(c.tracks, mockupUrl),
		Transcribing:  c.transcribing,
		AudioOnly:     c.audioOnly,
		ScopeItems:    append([]*entity.ScopeItem(nil), c.items...),
		TerminalError: c.terminalErr,
	}
	if p, ok := c.overlays.Pointer(); ok {
		snap.Pointer = &p
	}
	if cd, ok := c.overlays.Countdown(); ok {
		snap.Countdown = &cd
	}
	return snap
}

// Subscribe registers an observer. The returned channel is buffered; a
// subscriber that falls behind misses intermediate snapshots instead of
// blocking the controller.
func (c *Controller) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 8)
	c.subMu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.subMu.Unlock()
	return ch
}

func (c *Controller) Unsubscribe(ch chan Snapshot) {
	c.subMu.Lock()
	for i, sub := range c.subscribers {
		if sub == ch {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			close(sub)
			break
		}
	}
	c.subMu.Unlock()
}

func (c *Controller) notify() {
	snap := c.Snapshot()
	c.subMu.Lock()
	for _, sub := range c.subscribers {
		select {
		case sub <- snap:
		default:
		}
	}
	c.subMu.Unlock()
}

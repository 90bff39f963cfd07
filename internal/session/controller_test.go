package session

import (
	"errors"
	"testing"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/websocket"

	"github.com/stretchr/testify/assert"
)

func TestControllerSelfServeForcesHostRole(t *testing.T) {
	c := NewController(constant.SessionModeSelfServe, constant.RoleClient)
	assert.Equal(t, constant.RoleHost, c.Role())
}

func TestControllerConnectRequiresCredential(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleHost)

	err := c.SetConnected()
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Equal(t, StateInitializing, c.Snapshot().ConnState)

	c.SetCredential("jwt-token")
	assert.Equal(t, StateConnecting, c.Snapshot().ConnState)

	assert.NoError(t, c.SetConnected())
	assert.Equal(t, StateConnected, c.Snapshot().ConnState)
}

func TestControllerFailedCredentialBlocksJoin(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleClient)

	tokenErr := errors.New("token endpoint returned 503")
	c.FailCredential(tokenErr)

	snap := c.Snapshot()
	assert.Equal(t, StateInitializing, snap.ConnState)
	assert.Equal(t, tokenErr, snap.TerminalError)

	assert.ErrorIs(t, c.SetConnected(), ErrNoCredential)
}

func TestControllerPointerIsIdempotent(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleClient)

	p := websocket.PointerPayload{X: 0.25, Y: 0.75}
	c.ApplyPointer(p)
	c.ApplyPointer(p)
	c.ApplyPointer(p)

	snap := c.Snapshot()
	if assert.NotNil(t, snap.Pointer) {
		assert.Equal(t, p, *snap.Pointer)
	}
}

func TestControllerPointerIsSanitized(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleClient)

	c.ApplyPointer(websocket.PointerPayload{X: -3, Y: 42})

	snap := c.Snapshot()
	if assert.NotNil(t, snap.Pointer) {
		assert.Equal(t, websocket.PointerPayload{X: 0, Y: 1}, *snap.Pointer)
	}
}

func TestControllerDisconnectClearsOverlays(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleClient)
	c.SetCredential("jwt-token")
	assert.NoError(t, c.SetConnected())

	c.ApplyPointer(websocket.PointerPayload{X: 0.5, Y: 0.5})
	c.SetMockup("https://cdn.example.com/mockup.png")
	c.ApplyCountdown(websocket.CountdownPayload{Seconds: 3})

	c.SetDisconnected()

	snap := c.Snapshot()
	assert.Equal(t, StateDisconnected, snap.ConnState)
	assert.Nil(t, snap.Pointer)
	assert.Nil(t, snap.Countdown)
	assert.Empty(t, snap.Feed.MockupUrl)
}

func TestControllerMockupDrivesFeed(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleHost)
	c.SetTracks(TrackState{LocalCamera: true, RemoteCamera: true})

	c.SetMockup("https://cdn.example.com/mockup.png")
	assert.Equal(t, FeedMockup, c.Snapshot().Feed.Primary)

	// Empty url clears the mockup; video composition returns.
	c.SetMockup("")
	snap := c.Snapshot()
	assert.Equal(t, FeedRemote, snap.Feed.Primary)
	assert.Equal(t, FeedLocal, snap.Feed.Secondary)
}

func TestControllerTranscriptionToggleIsLocal(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleHost)

	assert.False(t, c.Snapshot().Transcribing)
	assert.True(t, c.ToggleTranscription())
	assert.True(t, c.Snapshot().Transcribing)
	assert.False(t, c.ToggleTranscription())
}

func TestControllerAudioOnlyDegrades(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleClient)
	c.SetCredential("jwt-token")
	assert.NoError(t, c.SetConnected())

	c.SetAudioOnly(true)

	snap := c.Snapshot()
	assert.Equal(t, StateConnected, snap.ConnState)
	assert.True(t, snap.AudioOnly)
}

func TestControllerScopeItemsAppendInOrder(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleHost)

	c.AppendScopeItem(&entity.ScopeItem{Area: "kitchen", Item: "drywall"})
	c.AppendScopeItem(&entity.ScopeItem{Area: "kitchen", Item: "cabinet"})

	snap := c.Snapshot()
	if assert.Len(t, snap.ScopeItems, 2) {
		assert.Equal(t, "drywall", snap.ScopeItems[0].Item)
		assert.Equal(t, "cabinet", snap.ScopeItems[1].Item)
	}
}

func TestControllerSubscribersObserveChanges(t *testing.T) {
	c := NewController(constant.SessionModeProject, constant.RoleHost)
	ch := c.Subscribe()
	defer c.Unsubscribe(ch)

	c.SetCredential("jwt-token")

	snap := <-ch
	assert.Equal(t, StateConnecting, snap.ConnState)
}

package session

import (
	"testing"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesForProjectHost(t *testing.T) {
	caps := CapabilitiesFor(constant.SessionModeProject, constant.RoleHost)

	assert.True(t, caps.Invite)
	assert.True(t, caps.Snapshot)
	assert.True(t, caps.TranscriptionToggle)
	assert.True(t, caps.CameraSwitch)
	assert.True(t, caps.EndSession)
	assert.True(t, caps.ScopeSidebar)

	assert.False(t, caps.AutoStartCamera)
	assert.False(t, caps.ScopeDrawer)
	assert.False(t, caps.Record)
}

func TestCapabilitiesForProjectClient(t *testing.T) {
	caps := CapabilitiesFor(constant.SessionModeProject, constant.RoleClient)

	assert.True(t, caps.AutoStartCamera)

	assert.False(t, caps.Invite)
	assert.False(t, caps.Snapshot)
	assert.False(t, caps.TranscriptionToggle)
	assert.False(t, caps.EndSession)
	assert.False(t, caps.ScopeSidebar)
	assert.False(t, caps.ScopeDrawer)
}

func TestCapabilitiesForQuick(t *testing.T) {
	// QUICK exposes the same surface to both roles.
	for _, role := range []string{constant.RoleHost, constant.RoleClient} {
		caps := CapabilitiesFor(constant.SessionModeQuick, role)

		assert.True(t, caps.Invite, role)
		assert.True(t, caps.Record, role)
		assert.True(t, caps.AISpotter, role)
		assert.True(t, caps.Settings, role)
		assert.True(t, caps.CameraSwitch, role)
		assert.True(t, caps.EndSession, role)

		assert.False(t, caps.ScopeSidebar, role)
		assert.False(t, caps.TranscriptionToggle, role)
	}
}

func TestCapabilitiesForSelfServe(t *testing.T) {
	caps := CapabilitiesFor(constant.SessionModeSelfServe, constant.RoleHost)

	assert.True(t, caps.CameraSwitch)
	assert.True(t, caps.ScopeDrawer)
	assert.True(t, caps.EndSession)
	assert.True(t, caps.AutoStartCamera)

	assert.False(t, caps.Invite)
	assert.False(t, caps.ScopeSidebar)
	assert.False(t, caps.TranscriptionToggle)
}

package session

import (
	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
)

// Capabilities is the control surface a mode/role combination exposes to
// its presentation layer.
type Capabilities struct {
	Invite              bool `json:"invite"`
	Snapshot            bool `json:"snapshot"`
	TranscriptionToggle bool `json:"transcription_toggle"`
	CameraSwitch        bool `json:"camera_switch"`
	EndSession          bool `json:"end_session"`
	ScopeSidebar        bool `json:"scope_sidebar"`
	ScopeDrawer         bool `json:"scope_drawer"`
	Record              bool `json:"record"`
	AISpotter           bool `json:"ai_spotter"`
	Settings            bool `json:"settings"`
	AutoStartCamera     bool `json:"auto_start_camera"`
}

// CapabilitiesFor resolves the mode/role matrix. SELF_SERVE has no distinct
// remote counterpart; its sole party acts as an autonomous host with a
// capture-oriented surface.
func CapabilitiesFor(mode, role string) Capabilities {
	switch mode {
	case constant.SessionModeQuick:
		return Capabilities{
			Invite:       true,
			Record:       true,
			AISpotter:    true,
			Settings:     true,
			CameraSwitch: true,
			EndSession:   true,
		}
	case constant.SessionModeSelfServe:
		return Capabilities{
			CameraSwitch:    true,
			ScopeDrawer:     true,
			EndSession:      true,
			AutoStartCamera: true,
		}
	default: // PROJECT
		if role == constant.RoleHost {
			return Capabilities{
				Invite:              true,
				Snapshot:            true,
				TranscriptionToggle: true,
				CameraSwitch:        true,
				EndSession:          true,
				ScopeSidebar:        true,
			}
		}
		// CLIENT: a consumer of video, pointer and mockup signals. Camera
		// and mic auto-enable on join; denial degrades, never terminates.
		return Capabilities{
			AutoStartCamera: true,
		}
	}
}

package constant

// Session modes. PROJECT is the full two-party walkthrough, QUICK is the
// reduced rapid-capture surface, SELF_SERVE is a single autonomous party.
const (
	SessionModeProject   = "PROJECT"
	SessionModeQuick     = "QUICK"
	SessionModeSelfServe = "SELF_SERVE"
)

// Per-connection roles, resolved at join time.
const (
	RoleHost   = "HOST"
	RoleClient = "CLIENT"
)

// Session lifecycle status.
const (
	SessionStatusPending = "PENDING"
	SessionStatusActive  = "ACTIVE"
	SessionStatusEnded   = "ENDED"
)

func IsKnownSessionMode(m string) bool {
	switch m {
	case SessionModeProject, SessionModeQuick, SessionModeSelfServe:
		return true
	}
	return false
}

func IsKnownRole(r string) bool {
	return r == RoleHost || r == RoleClient
}

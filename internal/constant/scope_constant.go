package constant

// Scope item types. The first four are the "work" categories and render as
// category tables; IMAGE rolls into the per-area gallery instead.
const (
	ScopeTypeRepair    = "REPAIR"
	ScopeTypePrep      = "PREP"
	ScopeTypePaint     = "PAINT"
	ScopeTypeNote      = "NOTE"
	ScopeTypeImage     = "IMAGE"
	ScopeTypeDetection = "DETECTION"
	ScopeTypeQuestion  = "QUESTION"
)

// CategoryDisplayOrder is the fixed ordering of category tables inside an
// area group. Types not listed here sort after these, in arrival order.
var CategoryDisplayOrder = []string{
	ScopeTypeRepair,
	ScopeTypePrep,
	ScopeTypePaint,
	ScopeTypeNote,
}

// AreaFilterAll is the pseudo-area the frontend uses as its "All" filter
// selector. It is a UI token, never a real area: writes carrying it (any
// casing) must be rejected so it can't leak into persisted rows.
const AreaFilterAll = "ALL"

func IsKnownScopeType(t string) bool {
	switch t {
	case ScopeTypeRepair, ScopeTypePrep, ScopeTypePaint, ScopeTypeNote,
		ScopeTypeImage, ScopeTypeDetection, ScopeTypeQuestion:
		return true
	}
	return false
}

package leave

import "strings"

// =============================================================================
// CLASSIFIER - raw (type, reason) to logical category
// =============================================================================

// Raw type tags recognized by the classifier. The set is open: anything
// else passes through as its own category.
const (
	TagVacation   = "vacation"
	TagSick       = "sick"
	TagShortLeave = "leave"
)

// sicknessRoots are the case-insensitive substrings that reclassify a
// generic short leave as sick leave. The domain records "short leave for
// illness" as a textual sub-case of the generic tag rather than a
// distinct type, so historical records depend on this fallback. Root
// forms cover the deployment locale's inflections ("болею",
// "больничный") plus the English tag.
var sicknessRoots = []string{"боле", "больн", "sick"}

// Classify maps a record to its logical category. It is pure and total:
// the result depends only on (Type, Reason), never on the viewer, the
// date, or any mutable state, so it may be memoized per record.
//
//   - the vacation tag and the sick tag map directly, Reason is ignored
//   - the generic short-leave tag inspects Reason: a sickness root makes
//     it Sick, otherwise it stays Leave
//   - an absent tag falls back to Leave
//   - any other tag becomes Other(tag): excluded from summary counts but
//     still visible in list views
func Classify(r Record) Category {
	switch r.Type {
	case TagVacation:
		return Vacation
	case TagSick:
		return Sick
	case TagShortLeave:
		if mentionsSickness(r.Reason) {
			return Sick
		}
		return Leave
	case "":
		return Leave
	default:
		return Other(r.Type)
	}
}

func mentionsSickness(reason string) bool {
	lower := strings.ToLower(reason)
	for _, root := range sicknessRoots {
		if strings.Contains(lower, root) {
			return true
		}
	}
	return false
}

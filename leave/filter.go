package leave

// =============================================================================
// VISIBILITY FILTER - ownership, status, and category gates
// =============================================================================

// Filter reduces a record snapshot to what the viewer may see under the
// given selection. Gates run in order (ownership, status, category) and
// short-circuit per record; the order does not affect the result set.
//
// The filter is a pure projection: the input is never mutated, a new
// slice is returned, and records keep their source (insertion) order so
// list rendering stays deterministic.
//
// Malformed or absent selection fields place no restriction. The
// ownership gate is the one exception: a viewer without an elevated
// role is unconditionally restricted to their own records.
func Filter(records []Record, viewer Viewer, sel Selection) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !visible(r, viewer, sel) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func visible(r Record, viewer Viewer, sel Selection) bool {
	// Ownership gate: unconditional for regular members; elevated
	// viewers see everyone, narrowed by the selected employee.
	if !viewer.Role.Elevated() {
		if r.UserID != viewer.CurrentUserID {
			return false
		}
	} else if sel.wantsUser() && r.UserID != sel.User {
		return false
	}

	// Status gate.
	if sel.wantsStatus() && string(r.Status) != sel.Status {
		return false
	}

	// Category gate: compares the classified category, so an unknown
	// raw tag is still selectable by its own name.
	if sel.wantsCategory() && Classify(r).String() != sel.Category {
		return false
	}

	return true
}

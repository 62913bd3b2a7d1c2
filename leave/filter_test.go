package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-board/leave"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func rec(id, user, typ, status string) leave.Record {
	return leave.Record{
		ID:        leave.RecordID(id),
		UserID:    leave.UserID(user),
		Type:      typ,
		StartDate: "2024-03-10",
		EndDate:   "2024-03-12",
		Status:    leave.Status(status),
	}
}

func member(user string) leave.Viewer {
	return leave.Viewer{CurrentUserID: leave.UserID(user), Role: leave.RoleMember}
}

func hr(user string) leave.Viewer {
	return leave.Viewer{CurrentUserID: leave.UserID(user), Role: leave.RoleHR}
}

func sampleRecords() []leave.Record {
	return []leave.Record{
		rec("1", "5", "vacation", "approved"),
		rec("2", "5", "sick", "pending"),
		rec("3", "7", "vacation", "approved"),
		rec("4", "7", "leave", "rejected"),
		rec("5", "9", "sabbatical", "approved"),
	}
}

// =============================================================================
// OWNERSHIP GATE
// =============================================================================

func TestFilter_MemberSeesOnlyOwnRecords(t *testing.T) {
	// GIVEN: records owned by users 5, 7, and 9
	// WHEN: a regular member (user 5) filters with no facets
	// THEN: only user 5's records survive
	got := leave.Filter(sampleRecords(), member("5"), leave.Selection{})

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, leave.UserID("5"), r.UserID)
	}
}

func TestFilter_MemberOwnershipGateIsUnconditional(t *testing.T) {
	// A member selecting another employee still sees only their own
	// records: the selection never widens the ownership gate.
	got := leave.Filter(sampleRecords(), member("5"), leave.Selection{User: "7"})

	for _, r := range got {
		assert.Equal(t, leave.UserID("5"), r.UserID)
	}
}

func TestFilter_ElevatedSeesEveryone(t *testing.T) {
	got := leave.Filter(sampleRecords(), hr("1"), leave.Selection{})
	assert.Len(t, got, 5)
}

func TestFilter_ElevatedNarrowedBySelectedUser(t *testing.T) {
	got := leave.Filter(sampleRecords(), hr("1"), leave.Selection{User: "7"})

	require.Len(t, got, 2)
	assert.Equal(t, leave.RecordID("3"), got[0].ID)
	assert.Equal(t, leave.RecordID("4"), got[1].ID)
}

func TestFilter_SelectAllSentinelMeansEveryone(t *testing.T) {
	got := leave.Filter(sampleRecords(), hr("1"), leave.Selection{
		User:     leave.UserID(leave.SelectAll),
		Category: leave.SelectAll,
		Status:   leave.SelectAll,
	})
	assert.Len(t, got, 5)
}

// =============================================================================
// STATUS AND CATEGORY GATES
// =============================================================================

func TestFilter_StatusGate(t *testing.T) {
	got := leave.Filter(sampleRecords(), hr("1"), leave.Selection{Status: "approved"})

	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, leave.StatusApproved, r.Status)
	}
}

func TestFilter_CategoryGate_UsesClassifiedCategory(t *testing.T) {
	// GIVEN: a generic leave record whose reason marks it as sickness
	records := []leave.Record{
		rec("1", "5", "sick", "approved"),
		{ID: "2", UserID: "5", Type: "leave", Reason: "больничный",
			StartDate: "2024-03-01", EndDate: "2024-03-02", Status: leave.StatusApproved},
		rec("3", "5", "vacation", "approved"),
	}

	// WHEN: filtering on the sick category
	got := leave.Filter(records, member("5"), leave.Selection{Category: "sick"})

	// THEN: the reclassified record is included alongside the tagged one
	require.Len(t, got, 2)
	assert.Equal(t, leave.RecordID("1"), got[0].ID)
	assert.Equal(t, leave.RecordID("2"), got[1].ID)
}

func TestFilter_CategoryGate_UnknownCategorySelectableByRawTag(t *testing.T) {
	got := leave.Filter(sampleRecords(), hr("1"), leave.Selection{Category: "sabbatical"})

	require.Len(t, got, 1)
	assert.Equal(t, leave.RecordID("5"), got[0].ID)
}

// =============================================================================
// PROJECTION GUARANTEES
// =============================================================================

func TestFilter_PreservesSourceOrder(t *testing.T) {
	got := leave.Filter(sampleRecords(), hr("1"), leave.Selection{Status: "approved"})

	ids := []leave.RecordID{}
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []leave.RecordID{"1", "3", "5"}, ids)
}

func TestFilter_Idempotent(t *testing.T) {
	records := sampleRecords()
	viewer := hr("1")
	sel := leave.Selection{Status: "approved"}

	first := leave.Filter(records, viewer, sel)
	second := leave.Filter(records, viewer, sel)
	assert.Equal(t, first, second)

	// Filtering an already-filtered set changes nothing.
	assert.Equal(t, first, leave.Filter(first, viewer, sel))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := make([]leave.Record, len(records))
	copy(before, records)

	leave.Filter(records, member("5"), leave.Selection{Status: "approved"})
	assert.Equal(t, before, records)
}

func TestFilter_EmptyInput(t *testing.T) {
	got := leave.Filter(nil, hr("1"), leave.Selection{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

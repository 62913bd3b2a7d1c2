package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-board/leave"
	"github.com/warp/leave-board/roster"
	"github.com/warp/leave-board/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(id, user string) leave.Record {
	return leave.Record{
		ID:        leave.RecordID(id),
		UserID:    leave.UserID(user),
		Type:      "vacation",
		StartDate: "2024-03-10",
		EndDate:   "2024-03-15",
		Status:    leave.StatusPending,
	}
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

func TestStore_SaveAndGetLeave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := record("r1", "5")
	want.Reason = "отпуск"
	require.NoError(t, store.SaveLeave(ctx, want))

	got, err := store.GetLeave(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_GetLeave_Absent(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetLeave(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ListLeaves_InsertionOrder(t *testing.T) {
	// The engine's filter preserves relative order, so the snapshot
	// must come back in insertion order.
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.SaveLeave(ctx, record(id, "5")))
	}

	got, err := store.ListLeaves(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, leave.RecordID("c"), got[0].ID)
	assert.Equal(t, leave.RecordID("a"), got[1].ID)
	assert.Equal(t, leave.RecordID("b"), got[2].ID)
}

func TestStore_ListLeaves_EmptyIsNotNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ListLeaves(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_DeleteLeave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLeave(ctx, record("r1", "5")))
	require.NoError(t, store.DeleteLeave(ctx, "r1"))

	got, err := store.GetLeave(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent record is not an error.
	assert.NoError(t, store.DeleteLeave(ctx, "r1"))
}

func TestStore_SaveLeave_RawDatesPreserved(t *testing.T) {
	// Date bounds are stored exactly as received; parsing and
	// degradation happen in the engine.
	store := newTestStore(t)
	ctx := context.Background()

	r := record("r1", "5")
	r.StartDate = "2024-03-10T15:04:05Z"
	r.EndDate = "garbage"
	require.NoError(t, store.SaveLeave(ctx, r))

	got, err := store.GetLeave(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T15:04:05Z", got.StartDate)
	assert.Equal(t, "garbage", got.EndDate)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestStore_Employees(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	emp := roster.Employee{ID: "5", Username: "ivanov", FirstName: "Иван", LastName: "Иванов"}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	got, err := store.GetEmployee(ctx, "5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, emp, *got)

	missing, err := store.GetEmployee(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, emp, all[0])
}

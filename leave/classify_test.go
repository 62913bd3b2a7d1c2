package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/leave-board/leave"
)

// =============================================================================
// CLASSIFIER TESTS
// =============================================================================

func TestClassify_KnownTags(t *testing.T) {
	tests := []struct {
		name   string
		record leave.Record
		want   leave.Category
	}{
		{
			name:   "vacation tag maps directly",
			record: leave.Record{Type: "vacation"},
			want:   leave.Vacation,
		},
		{
			name:   "sick tag maps directly",
			record: leave.Record{Type: "sick"},
			want:   leave.Sick,
		},
		{
			name:   "generic leave tag without sickness reason stays leave",
			record: leave.Record{Type: "leave", Reason: "family matters"},
			want:   leave.Leave,
		},
		{
			name:   "absent tag falls back to leave",
			record: leave.Record{Type: "", Reason: "whatever"},
			want:   leave.Leave,
		},
		{
			name:   "unknown tag passes through as its own category",
			record: leave.Record{Type: "sabbatical"},
			want:   leave.Other("sabbatical"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leave.Classify(tt.record))
		})
	}
}

func TestClassify_SicknessReasonFallback(t *testing.T) {
	// The generic leave tag is reclassified as sick when the reason
	// text mentions sickness, case-insensitive.
	tests := []struct {
		reason string
		want   leave.Category
	}{
		{"болею", leave.Sick},
		{"Больничный лист", leave.Sick},
		{"БОЛЬНИЧНЫЙ", leave.Sick},
		{"out sick today", leave.Sick},
		{"поездка на дачу", leave.Leave},
		{"", leave.Leave},
	}

	for _, tt := range tests {
		r := leave.Record{Type: "leave", Reason: tt.reason}
		assert.Equal(t, tt.want, leave.Classify(r), "reason %q", tt.reason)
	}
}

func TestClassify_ExplicitTagsIgnoreReason(t *testing.T) {
	// For the vacation and sick tags, classification is independent of
	// the reason content.
	vac := leave.Record{Type: "vacation", Reason: "больничный"}
	assert.Equal(t, leave.Vacation, leave.Classify(vac))

	sick := leave.Record{Type: "sick", Reason: "vacation actually"}
	assert.Equal(t, leave.Sick, leave.Classify(sick))
}

func TestClassify_Pure(t *testing.T) {
	// Same inputs, same output: safe to memoize per record.
	r := leave.Record{Type: "leave", Reason: "болею"}
	first := leave.Classify(r)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, leave.Classify(r))
	}
}

func TestCategory_Counted(t *testing.T) {
	assert.True(t, leave.Vacation.Counted())
	assert.True(t, leave.Sick.Counted())
	assert.True(t, leave.Leave.Counted())
	assert.False(t, leave.Other("sabbatical").Counted())
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "vacation", leave.Vacation.String())
	assert.Equal(t, "sick", leave.Sick.String())
	assert.Equal(t, "leave", leave.Leave.String())
	assert.Equal(t, "sabbatical", leave.Other("sabbatical").String())
}

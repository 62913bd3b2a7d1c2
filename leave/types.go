/*
Package leave implements the absence aggregation engine.

PURPOSE:
  This package contains the pure core of the leave board: classifying raw
  absence records into logical categories, reducing a record snapshot to
  what a given viewer may see, and deriving calendar-cell indexes and
  monthly summary counts from the filtered set.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: A raw absence request as delivered by the record source
  - Category: A closed tagged variant (vacation/sick/leave/other)
  - Viewer: Who is looking, and with what role
  - Selection: The transient facet state of the calendar view

DESIGN PRINCIPLES:
  1. Purity: every operation is a function of its inputs; records are
     never mutated, derived views are rebuilt from the latest snapshot
  2. Degradation: malformed input (unparseable dates, unknown tags)
     shrinks the result, it never fails the computation
  3. Type Safety: identifiers and enums are distinct types; the category
     variant is closed so the aggregator can be checked exhaustively

PIPELINE:
  Classify -> Filter -> IndexByDay / MonthlySummary

SEE ALSO:
  - classify.go: raw tag + reason text to Category
  - filter.go: visibility rules (ownership, status, category gates)
  - aggregate.go: calendar index and monthly summary
  - time.go: day-granularity time points and month windows
*/
package leave

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type RecordID string

// =============================================================================
// WORKFLOW STATUS - pass-through, no transition logic lives here
// =============================================================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// =============================================================================
// VIEWER ROLES
// =============================================================================

type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleHR      Role = "hr"
	RoleAdmin   Role = "admin"
)

// Elevated reports whether the role grants visibility across all
// employees' records. Anything unrecognized is treated as a regular
// member: the ownership gate never fails open.
func (r Role) Elevated() bool {
	switch r {
	case RoleManager, RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}

// =============================================================================
// CATEGORY - closed tagged variant over the open set of raw type tags
// =============================================================================

type CategoryKind int

const (
	KindVacation CategoryKind = iota
	KindSick
	KindLeave
	KindOther
)

// Category is the logical classification of a record. For KindOther the
// Raw field carries the original type tag so unknown categories remain
// visible (and selectable) in list views even though the summary
// aggregator ignores them.
type Category struct {
	Kind CategoryKind
	Raw  string
}

var (
	Vacation = Category{Kind: KindVacation}
	Sick     = Category{Kind: KindSick}
	Leave    = Category{Kind: KindLeave}
)

func Other(raw string) Category { return Category{Kind: KindOther, Raw: raw} }

// Counted reports whether the category participates in monthly summary
// counts. Only the three known kinds are counted.
func (c Category) Counted() bool {
	switch c.Kind {
	case KindVacation, KindSick, KindLeave:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	switch c.Kind {
	case KindVacation:
		return TagVacation
	case KindSick:
		return TagSick
	case KindLeave:
		return TagShortLeave
	default:
		return c.Raw
	}
}

// =============================================================================
// RECORD - one absence request, read-only to this engine
// =============================================================================

// Record is owned by the backing store and delivered over a loosely
// typed network boundary: the date bounds stay raw strings here and are
// parsed on demand (see Window). A record whose dates fail to parse is
// excluded from calendar and summary derivations but still appears in
// list views.
type Record struct {
	ID        RecordID
	UserID    UserID
	Type      string // raw category tag, open-ended
	Reason    string // free text, classification fallback for the generic tag
	StartDate string // inclusive, YYYY-MM-DD or a timestamp carrying time-of-day
	EndDate   string // inclusive
	Status    Status
}

// Window parses the record's inclusive date range at day granularity.
func (r Record) Window() (Window, error) {
	start, err := ParseDay(r.StartDate)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseDay(r.EndDate)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

// =============================================================================
// VIEWER CONTEXT - derived from session state on every view open
// =============================================================================

type Viewer struct {
	CurrentUserID UserID
	Role          Role
}

// =============================================================================
// FILTER SELECTION - transient facet state owned by the view
// =============================================================================

// Selection holds the facets of the calendar view. The zero value (or
// the explicit "all" sentinel) places no restriction; absent or
// malformed fields fail open to the most permissive interpretation the
// viewer's role allows.
type Selection struct {
	User     UserID // elevated viewers only; "" or "all" = everyone
	Category string // "" or "all" = every category
	Status   string // "" or "all" = every status
}

const SelectAll = "all"

func (s Selection) wantsUser() bool     { return s.User != "" && string(s.User) != SelectAll }
func (s Selection) wantsCategory() bool { return s.Category != "" && s.Category != SelectAll }
func (s Selection) wantsStatus() bool   { return s.Status != "" && s.Status != SelectAll }

/*
handlers.go - HTTP API handlers for the leave board

PURPOSE:
  Exposes the aggregation engine via REST. Handlers fetch the latest
  record snapshot from the store, apply the engine's pure derivations
  for the requesting viewer, and serialize the result. Derived state is
  never cached across requests: recomputation from the latest snapshot
  is the consistency model.

ENDPOINTS:
  Leaves:
    GET    /api/leaves                 Visibility-filtered record list
    POST   /api/leaves                 Create record
    DELETE /api/leaves/{id}            Delete record (notifies clients)
    GET    /api/leaves/calendar        Week-aligned month grid
    GET    /api/leaves/summary         Per-category monthly counts

  Directory:
    GET    /api/employees              List/search employees
    POST   /api/employees              Create employee

  Transport:
    GET    /api/events                 Realtime connection state

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found (or not visible to the viewer)
  - 500: Internal errors
  A record the viewer may not see is indistinguishable from an absent
  one: authorization shortfalls have no dedicated error path.

SEE ALSO:
  - dto.go: Request/response data structures
  - session.go: Viewer extraction
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/leave-board/leave"
	"github.com/warp/leave-board/realtime"
	"github.com/warp/leave-board/roster"
	"github.com/warp/leave-board/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Transport realtime.Client
}

// NewHandler creates a new handler with the given store and transport.
func NewHandler(store *sqlite.Store, transport realtime.Client) *Handler {
	return &Handler{Store: store, Transport: transport}
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ListLeaves returns the visibility-filtered record list.
// GET /api/leaves?user=&category=&status=
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFrom(r.Context())
	sel := selectionFrom(r)

	records, err := h.Store.ListLeaves(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave records", err)
		return
	}

	filtered := leave.Filter(records, viewer, sel)
	writeJSON(w, http.StatusOK, toLeaveDTOs(filtered, h.attribution(r, filtered)))
}

// CreateLeave creates a new leave record, defaulting to pending status.
// POST /api/leaves
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFrom(r.Context())

	var req CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Regular members create records for themselves only.
	userID := viewer.CurrentUserID
	if req.UserID != "" && viewer.Role.Elevated() {
		userID = leave.UserID(req.UserID)
	}
	if userID == "" {
		writeError(w, http.StatusBadRequest, "Missing user identity", nil)
		return
	}
	if _, err := leave.ParseDay(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	if _, err := leave.ParseDay(req.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	rec := leave.Record{
		ID:        leave.RecordID(uuid.NewString()),
		UserID:    userID,
		Type:      req.Type,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    leave.StatusPending,
	}

	if err := h.Store.SaveLeave(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create leave record", err)
		return
	}

	h.notify(r, realtime.EventLeaveCreated, rec.ID)
	writeJSON(w, http.StatusCreated, toLeaveDTO(rec, nil))
}

// DeleteLeave removes a record and tells connected clients to refetch.
// A record outside the viewer's visibility reads as absent. A failed
// delete leaves the stored state untouched.
// DELETE /api/leaves/{id}
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFrom(r.Context())
	id := leave.RecordID(chi.URLParam(r, "id"))

	rec, err := h.Store.GetLeave(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get leave record", err)
		return
	}
	if rec == nil || (!viewer.Role.Elevated() && rec.UserID != viewer.CurrentUserID) {
		writeError(w, http.StatusNotFound, "Leave record not found", nil)
		return
	}

	if err := h.Store.DeleteLeave(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete leave record", err)
		return
	}

	h.notify(r, realtime.EventLeaveDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CALENDAR AND SUMMARY HANDLERS
// =============================================================================

// Calendar returns the week-aligned month grid with per-cell records
// and the deterministic icon representative.
// GET /api/leaves/calendar?year=&month=&user=&category=&status=
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFrom(r.Context())
	sel := selectionFrom(r)
	month, err := monthFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	records, err := h.Store.ListLeaves(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave records", err)
		return
	}

	idx := leave.IndexByDay(records, viewer, sel, month)
	names := h.attribution(r, leave.Filter(records, viewer, sel))

	weeks := [][]CalendarCellDTO{}
	for _, week := range leave.MonthGrid(month) {
		cells := make([]CalendarCellDTO, len(week))
		for i, day := range week {
			if day.IsZero() {
				continue // blank grid cell
			}
			cell := CalendarCellDTO{Date: day.String()}
			if rs := idx.Records(day); len(rs) > 0 {
				cell.Records = toLeaveDTOs(rs, names)
				if rep, ok := idx.Representative(day); ok {
					cell.RepresentativeID = string(rep.ID)
				}
			}
			cells[i] = cell
		}
		weeks = append(weeks, cells)
	}

	writeJSON(w, http.StatusOK, CalendarDTO{
		Year:  month.Year,
		Month: int(month.Month),
		Weeks: weeks,
	})
}

// Summary returns per-category counts and day totals for the month,
// computed over the viewer's filtered snapshot.
// GET /api/leaves/summary?year=&month=&user=&category=&status=
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFrom(r.Context())
	sel := selectionFrom(r)
	month, err := monthFrom(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	records, err := h.Store.ListLeaves(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave records", err)
		return
	}

	sum := leave.MonthlySummary(leave.Filter(records, viewer, sel), month)
	writeJSON(w, http.StatusOK, SummaryDTO{
		Year:         month.Year,
		Month:        int(month.Month),
		Vacation:     sum.Vacation,
		Sick:         sum.Sick,
		Leave:        sum.Leave,
		VacationDays: sum.VacationDays.String(),
		SickDays:     sum.SickDays.String(),
		LeaveDays:    sum.LeaveDays.String(),
	})
}

// =============================================================================
// DIRECTORY HANDLERS
// =============================================================================

// ListEmployees returns the directory, optionally name-searched.
// GET /api/employees?q=
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dir := roster.NewDirectory(employees)
	found := dir.Search(r.URL.Query().Get("q"))
	dtos := make([]EmployeeDTO, len(found))
	for i, e := range found {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a directory entry.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "Missing username", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	emp := roster.Employee{
		ID:        leave.UserID(req.ID),
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// =============================================================================
// TRANSPORT HANDLERS
// =============================================================================

// TransportState reports whether the realtime transport is connected.
// GET /api/events
func (h *Handler) TransportState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TransportStateDTO{Connected: h.Transport.Connected()})
}

// =============================================================================
// HELPERS
// =============================================================================

// selectionFrom builds the facet selection from query parameters.
// Absent parameters place no restriction.
func selectionFrom(r *http.Request) leave.Selection {
	q := r.URL.Query()
	return leave.Selection{
		User:     leave.UserID(q.Get("user")),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}
}

// monthFrom reads the displayed month window, defaulting to the current
// month.
func monthFrom(r *http.Request) (leave.Month, error) {
	q := r.URL.Query()
	now := time.Now()
	month := leave.Month{Year: now.Year(), Month: now.Month()}

	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return leave.Month{}, err
		}
		month.Year = y
	}
	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return leave.Month{}, err
		}
		if m < 1 || m > 12 {
			return leave.Month{}, strconv.ErrRange
		}
		month.Month = time.Month(m)
	}
	return month, nil
}

// attribution resolves display names for the records' owners. A
// directory fetch failure degrades to raw ids, never to an error.
func (h *Handler) attribution(r *http.Request, records []leave.Record) map[leave.UserID]string {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		logrus.WithError(err).Warn("directory unavailable, attributing by id")
		employees = nil
	}
	return roster.NewDirectory(employees).Attribute(records)
}

// notify publishes a refetch notification. Transport failures are
// logged, not surfaced: the mutation already succeeded.
func (h *Handler) notify(r *http.Request, name string, id leave.RecordID) {
	e := realtime.Event{Name: name, Payload: map[string]string{"id": string(id)}}
	if err := h.Transport.Publish(r.Context(), e); err != nil {
		logrus.WithError(err).WithField("event", name).Warn("failed to publish realtime event")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

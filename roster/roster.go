// Package roster provides the employee directory consumed by the leave
// board for display attribution and name search. The directory never
// feeds the aggregation algorithm itself.
package roster

import (
	"strings"

	"github.com/warp/leave-board/leave"
)

// Employee is id-keyed metadata from the user directory.
type Employee struct {
	ID        leave.UserID
	Username  string
	FirstName string
	LastName  string
}

// DisplayName returns the full name, falling back to the username.
func (e Employee) DisplayName() string {
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name == "" {
		return e.Username
	}
	return name
}

// Directory wraps a snapshot of the employee list. Like the record
// snapshot it is refetched wholesale; lookups never mutate it.
type Directory struct {
	employees []Employee
	byID      map[leave.UserID]Employee
}

func NewDirectory(employees []Employee) *Directory {
	byID := make(map[leave.UserID]Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}
	return &Directory{employees: employees, byID: byID}
}

func (d *Directory) ByID(id leave.UserID) (Employee, bool) {
	e, ok := d.byID[id]
	return e, ok
}

func (d *Directory) All() []Employee { return d.employees }

// Search returns employees whose username or full name contains the
// query, case-insensitive, in snapshot order. An empty query returns
// everyone.
func (d *Directory) Search(q string) []Employee {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return d.employees
	}
	var out []Employee
	for _, e := range d.employees {
		if strings.Contains(strings.ToLower(e.Username), q) ||
			strings.Contains(strings.ToLower(e.DisplayName()), q) {
			out = append(out, e)
		}
	}
	return out
}

// Attribute maps each record's owner to a display name for list
// rendering. Unknown owners fall back to the raw id so a stale
// directory snapshot never hides a record.
func (d *Directory) Attribute(records []leave.Record) map[leave.UserID]string {
	names := make(map[leave.UserID]string)
	for _, r := range records {
		if _, done := names[r.UserID]; done {
			continue
		}
		if e, ok := d.byID[r.UserID]; ok {
			names[r.UserID] = e.DisplayName()
		} else {
			names[r.UserID] = string(r.UserID)
		}
	}
	return names
}

package model

import "time"

// ShipStatus is the operational state shown on a ship card.
type ShipStatus string

const (
	ShipStatusOperational ShipStatus = "operational"
	ShipStatusScheduled   ShipStatus = "scheduled"
	ShipStatusInProgress  ShipStatus = "in-progress"
	ShipStatusOverdue     ShipStatus = "overdue"
)

// ShipStatuses lists every ship status in display order.
var ShipStatuses = []ShipStatus{
	ShipStatusOperational,
	ShipStatusScheduled,
	ShipStatusInProgress,
	ShipStatusOverdue,
}

// Valid reports whether s is one of the known ship statuses.
func (s ShipStatus) Valid() bool {
	for _, v := range ShipStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Ship is a vessel tracked by the fleet dashboard.
type Ship struct {
	// ID is the unique identifier, generated when the ship is added.
	ID string `json:"id"`

	// Name is the vessel name (e.g., "Oceanic Voyager").
	Name string `json:"name"`

	// Type is the vessel category (e.g., "Cargo Ship").
	Type string `json:"type"`

	// Year is the year the ship was built.
	Year int `json:"year"`

	Status ShipStatus `json:"status"`

	LastInspection  time.Time `json:"lastInspection"`
	NextMaintenance time.Time `json:"nextMaintenance"`

	// PendingTasks is maintained by the user, not derived from the task list.
	PendingTasks int `json:"pendingTasks"`

	Captain string `json:"captain,omitempty"`
}

// ShipInput carries every ship field except the generated ID.
type ShipInput struct {
	Name            string
	Type            string
	Year            int
	Status          ShipStatus
	LastInspection  time.Time
	NextMaintenance time.Time
	PendingTasks    int
	Captain         string
}

// ShipPatch is a partial update; nil fields are left untouched.
type ShipPatch struct {
	Name            *string
	Type            *string
	Year            *int
	Status          *ShipStatus
	LastInspection  *time.Time
	NextMaintenance *time.Time
	PendingTasks    *int
	Captain         *string
}

// Apply merges the non-nil fields of p into s.
func (p ShipPatch) Apply(s *Ship) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Year != nil {
		s.Year = *p.Year
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.LastInspection != nil {
		s.LastInspection = *p.LastInspection
	}
	if p.NextMaintenance != nil {
		s.NextMaintenance = *p.NextMaintenance
	}
	if p.PendingTasks != nil {
		s.PendingTasks = *p.PendingTasks
	}
	if p.Captain != nil {
		s.Captain = *p.Captain
	}
}

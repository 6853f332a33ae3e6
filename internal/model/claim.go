package model

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a claim as stored in the backing table.
// The wire strings are shared with the legacy tooling and must not change.
type Status string

const (
	StatusPending       Status = "Pendiente"
	StatusInProgress    Status = "En curso"
	StatusResolved      Status = "Resuelto"
	StatusDisconnection Status = "Desconexión"
)

// ParseStatus matches a raw cell value against the four known states,
// ignoring case and surrounding whitespace.
func ParseStatus(raw string) (Status, bool) {
	s := strings.TrimSpace(raw)
	for _, st := range []Status{StatusPending, StatusInProgress, StatusResolved, StatusDisconnection} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Active reports whether the claim still needs technician attention.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusInProgress
}

// CategoryDisconnect is the claim category that is created directly in the
// Disconnection state instead of Pending.
const CategoryDisconnect = "Desconexion a Pedido"

// IsDisconnectCategory reports whether a category designates a requested
// disconnection.
func IsDisconnectCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), CategoryDisconnect)
}

// Claim is one row of the claims table.
type Claim struct {
	ID           string
	ClientNumber string
	Sector       string
	Name         string
	Address      string
	Phone        string
	Category     string
	Description  string
	Status       Status
	Technicians  []string
	Seal         string
	HandledBy    string
	Annotation   string
	CreatedAt    time.Time
	ResolvedAt   time.Time // zero until the claim is resolved
}

// ClaimFromRow materializes a claim from a padded claims-table row. Cells that
// fail to parse (unknown status text, malformed dates) are left at their zero
// value; callers that need a valid state machine input must check Status.
func ClaimFromRow(row []string, loc *time.Location) Claim {
	c := Claim{
		ClientNumber: strings.TrimSpace(row[ClaimColClientNumber]),
		Sector:       strings.TrimSpace(row[ClaimColSector]),
		Name:         row[ClaimColName],
		Address:      row[ClaimColAddress],
		Phone:        strings.TrimSpace(row[ClaimColPhone]),
		Category:     strings.TrimSpace(row[ClaimColCategory]),
		Description:  row[ClaimColDescription],
		Technicians:  SplitTechnicians(row[ClaimColTechnician]),
		Seal:         strings.TrimSpace(row[ClaimColSeal]),
		HandledBy:    row[ClaimColHandledBy],
		Annotation:   row[ClaimColAnnotation],
		ID:           strings.TrimSpace(row[ClaimColID]),
	}
	if st, ok := ParseStatus(row[ClaimColStatus]); ok {
		c.Status = st
	}
	if t, err := ParseTime(row[ClaimColCreated], loc); err == nil {
		c.CreatedAt = t
	}
	if t, err := ParseTime(row[ClaimColResolved], loc); err == nil {
		c.ResolvedAt = t
	}
	return c
}

// Row renders the claim as a full claims-table row for an append.
func (c Claim) Row() []string {
	row := make([]string, ClaimColumnCount)
	row[ClaimColCreated] = FormatTime(c.CreatedAt)
	row[ClaimColClientNumber] = c.ClientNumber
	row[ClaimColSector] = c.Sector
	row[ClaimColName] = c.Name
	row[ClaimColAddress] = c.Address
	row[ClaimColPhone] = c.Phone
	row[ClaimColCategory] = c.Category
	row[ClaimColDescription] = c.Description
	row[ClaimColStatus] = string(c.Status)
	row[ClaimColTechnician] = JoinTechnicians(c.Technicians)
	row[ClaimColSeal] = c.Seal
	row[ClaimColHandledBy] = c.HandledBy
	row[ClaimColResolved] = FormatTime(c.ResolvedAt)
	row[ClaimColAnnotation] = c.Annotation
	row[ClaimColID] = c.ID
	return row
}

// JoinTechnicians renders a technician set as the single-cell wire form:
// comma separated, uppercased, no empty entries.
func JoinTechnicians(techs []string) string {
	var clean []string
	for _, t := range techs {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ", ")
}

// SplitTechnicians parses the single-cell wire form back into a set.
func SplitTechnicians(cell string) []string {
	var techs []string
	for _, t := range strings.Split(cell, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}

// TimeLayout is the timestamp format shared with the legacy rows already in
// the backing store.
const TimeLayout = "02/01/2006 15:04"

// FormatTime renders a timestamp cell. Zero times render empty, which is how
// "not yet resolved" is represented on the wire.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// ParseTime parses a timestamp cell in the given location.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, strings.TrimSpace(s), loc)
}

package model

import (
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{"Pendiente", StatusPending, true},
		{"  pendiente ", StatusPending, true},
		{"EN CURSO", StatusInProgress, true},
		{"Resuelto", StatusResolved, true},
		{"Desconexión", StatusDisconnection, true},
		{"Cerrado", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStatusActive(t *testing.T) {
	if !StatusPending.Active() || !StatusInProgress.Active() {
		t.Error("Expected pending and in-progress to be active")
	}
	if StatusResolved.Active() || StatusDisconnection.Active() {
		t.Error("Expected resolved and disconnection to be inactive")
	}
}

func TestIsDisconnectCategory(t *testing.T) {
	if !IsDisconnectCategory("Desconexion a Pedido") {
		t.Error("Expected exact category to match")
	}
	if !IsDisconnectCategory("  desconexion a pedido ") {
		t.Error("Expected case-insensitive trimmed match")
	}
	if IsDisconnectCategory("Sin Señal") {
		t.Error("Expected other categories not to match")
	}
}

func TestClaimRowRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Fatalf("Load location: %v", err)
	}

	in := Claim{
		ID:           "AB12CD34",
		ClientNumber: "1042",
		Sector:       "7",
		Name:         "GOMEZ JUAN",
		Address:      "CALLE FALSA 123",
		Phone:        "555-0101",
		Category:     "Sin Señal",
		Description:  "SIN IMAGEN DESDE AYER",
		Status:       StatusInProgress,
		Technicians:  []string{"PEREZ", "LOPEZ"},
		Seal:         "P-9931",
		HandledBy:    "MARIA",
		Annotation:   "CLIENTE AVISADO",
		CreatedAt:    time.Date(2026, 2, 1, 10, 30, 0, 0, loc),
	}

	row := in.Row()
	if len(row) != ClaimColumnCount {
		t.Fatalf("Expected %d cells, got %d", ClaimColumnCount, len(row))
	}
	if row[ClaimColCreated] != "01/02/2026 10:30" {
		t.Errorf("Unexpected created cell: %q", row[ClaimColCreated])
	}
	if row[ClaimColTechnician] != "PEREZ, LOPEZ" {
		t.Errorf("Unexpected technician cell: %q", row[ClaimColTechnician])
	}
	if row[ClaimColResolved] != "" {
		t.Errorf("Expected empty resolved cell for open claim, got %q", row[ClaimColResolved])
	}

	out := ClaimFromRow(row, loc)
	if out.ID != in.ID || out.ClientNumber != in.ClientNumber || out.Status != in.Status {
		t.Errorf("Round trip mismatch: %+v", out)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("Expected created %v, got %v", in.CreatedAt, out.CreatedAt)
	}
	if !out.ResolvedAt.IsZero() {
		t.Errorf("Expected zero resolved time, got %v", out.ResolvedAt)
	}
	if len(out.Technicians) != 2 || out.Technicians[0] != "PEREZ" {
		t.Errorf("Unexpected technicians: %v", out.Technicians)
	}
}

func TestClaimFromRow_ToleratesBadCells(t *testing.T) {
	row := make([]string, ClaimColumnCount)
	row[ClaimColStatus] = "estado raro"
	row[ClaimColCreated] = "not a date"
	row[ClaimColID] = " AB12CD34 "

	c := ClaimFromRow(row, time.UTC)
	if c.Status != "" {
		t.Errorf("Expected zero status for unknown text, got %q", c.Status)
	}
	if !c.CreatedAt.IsZero() {
		t.Errorf("Expected zero time for malformed date, got %v", c.CreatedAt)
	}
	if c.ID != "AB12CD34" {
		t.Errorf("Expected trimmed id, got %q", c.ID)
	}
}

func TestJoinTechnicians(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"perez"}, "PEREZ"},
		{[]string{" perez ", "", "lopez"}, "PEREZ, LOPEZ"},
	}
	for _, tt := range tests {
		if got := JoinTechnicians(tt.in); got != tt.want {
			t.Errorf("JoinTechnicians(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTechnicians(t *testing.T) {
	got := SplitTechnicians(" perez , lopez ,, ")
	if len(got) != 2 || got[0] != "PEREZ" || got[1] != "LOPEZ" {
		t.Errorf("Unexpected split: %v", got)
	}
	if got := SplitTechnicians(""); got != nil {
		t.Errorf("Expected nil for empty cell, got %v", got)
	}
}

func TestFormatTime_ZeroIsEmpty(t *testing.T) {
	if got := FormatTime(time.Time{}); got != "" {
		t.Errorf("Expected empty string for zero time, got %q", got)
	}
}

func TestSchemaWidths(t *testing.T) {
	if got := ClaimsSchema("reclamos").Width(); got != ClaimColumnCount {
		t.Errorf("Claims schema width %d, want %d", got, ClaimColumnCount)
	}
	if got := ClientsSchema("clientes").Width(); got != ClientColumnCount {
		t.Errorf("Clients schema width %d, want %d", got, ClientColumnCount)
	}
}

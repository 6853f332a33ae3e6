package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRESTTransport_ReadTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tables/claims/values" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Unexpected auth header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"values":[["Fecha","Estado"],["01/02/2026 10:00","Pendiente"]]}`)
	}))
	defer server.Close()

	transport := NewRESTTransport(server.URL, "secret", 5*time.Second)
	values, err := transport.ReadTable(context.Background(), "claims")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(values) != 2 || values[1][1] != "Pendiente" {
		t.Errorf("Unexpected values: %v", values)
	}
}

func TestRESTTransport_BatchWriteBody(t *testing.T) {
	var body struct {
		Updates []struct {
			Range  string     `json:"range"`
			Values [][]string `json:"values"`
		} `json:"updates"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tables/claims/values:batchUpdate" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewRESTTransport(server.URL, "", 5*time.Second)
	err := transport.BatchWrite(context.Background(), "claims", []CellUpdate{
		{Range: "I5", Value: "En curso"},
		{Range: "J5", Value: "GOMEZ, PEREZ"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(body.Updates) != 2 {
		t.Fatalf("Expected 2 updates on the wire, got %d", len(body.Updates))
	}
	if body.Updates[0].Range != "I5" || body.Updates[0].Values[0][0] != "En curso" {
		t.Errorf("Unexpected first update: %+v", body.Updates[0])
	}
}

func TestRESTTransport_DeleteRowsZeroBasedIndices(t *testing.T) {
	var body struct {
		Requests []struct {
			DeleteDimension struct {
				Dimension  string `json:"dimension"`
				StartIndex int    `json:"startIndex"`
				EndIndex   int    `json:"endIndex"`
			} `json:"deleteDimension"`
		} `json:"requests"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tables/claims:batchUpdate" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewRESTTransport(server.URL, "", 5*time.Second)
	if err := transport.DeleteRows(context.Background(), "claims", []int{7, 3}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(body.Requests) != 2 {
		t.Fatalf("Expected 2 structural requests, got %d", len(body.Requests))
	}
	// 1-based row 7 deletes wire indices [6, 7).
	if dd := body.Requests[0].DeleteDimension; dd.StartIndex != 6 || dd.EndIndex != 7 || dd.Dimension != "ROWS" {
		t.Errorf("Unexpected first delete: %+v", dd)
	}
	if dd := body.Requests[1].DeleteDimension; dd.StartIndex != 2 || dd.EndIndex != 3 {
		t.Errorf("Unexpected second delete: %+v", dd)
	}
}

func TestRESTTransport_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindTransient},
		{http.StatusBadGateway, KindTransient},
		{http.StatusBadRequest, KindTerminal},
		{http.StatusUnauthorized, KindTerminal},
		{http.StatusForbidden, KindTerminal},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			transport := NewRESTTransport(server.URL, "", 5*time.Second)
			_, err := transport.ReadTable(context.Background(), "claims")
			if err == nil {
				t.Fatalf("Expected error for status %d, got nil", tt.status)
			}
			se, ok := err.(*Error)
			if !ok {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if se.Kind != tt.want {
				t.Errorf("Status %d classified %s, want %s", tt.status, se.Kind, tt.want)
			}
			if se.Status != tt.status {
				t.Errorf("Expected status %d recorded, got %d", tt.status, se.Status)
			}
		})
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{9, "I"},
		{16, "P"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
	}
	for _, tt := range tests {
		if got := ColumnLetter(tt.col); got != tt.want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestCellRange(t *testing.T) {
	if got := CellRange(9, 5); got != "I5" {
		t.Errorf("CellRange(9, 5) = %q, want I5", got)
	}
	if got := CellRange(16, 123); got != "P123" {
		t.Errorf("CellRange(16, 123) = %q, want P123", got)
	}
}

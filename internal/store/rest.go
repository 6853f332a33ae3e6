package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// restTransport talks to a sheetd-style table service:
//
//	GET  {base}/v1/tables/{table}/values
//	POST {base}/v1/tables/{table}/values:append
//	POST {base}/v1/tables/{table}/values:batchUpdate
//	POST {base}/v1/tables/{table}/values:update
//	POST {base}/v1/tables/{table}:batchUpdate   (structural requests)
type restTransport struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewRESTTransport creates a Transport over the table service HTTP API.
func NewRESTTransport(baseURL, token string, timeout time.Duration) Transport {
	return &restTransport{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

type rangeUpdate struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

type deleteDimension struct {
	Dimension  string `json:"dimension"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

type structuralRequest struct {
	DeleteDimension *deleteDimension `json:"deleteDimension,omitempty"`
}

func (t *restTransport) ReadTable(ctx context.Context, table string) ([][]string, error) {
	var out valuesResponse
	err := t.do(ctx, "read", table, http.MethodGet, t.tableURL(table, "/values"), nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Values, nil
}

func (t *restTransport) Append(ctx context.Context, table string, row []string) error {
	body := map[string][][]string{"values": {row}}
	return t.do(ctx, "append", table, http.MethodPost, t.tableURL(table, "/values:append"), body, nil)
}

func (t *restTransport) BatchWrite(ctx context.Context, table string, updates []CellUpdate) error {
	body := map[string][]rangeUpdate{"updates": wireUpdates(updates)}
	return t.do(ctx, "batch_write", table, http.MethodPost, t.tableURL(table, "/values:batchUpdate"), body, nil)
}

func (t *restTransport) WriteCell(ctx context.Context, table string, update CellUpdate) error {
	body := rangeUpdate{Range: update.Range, Values: [][]string{{update.Value}}}
	return t.do(ctx, "write_cell", table, http.MethodPost, t.tableURL(table, "/values:update"), body, nil)
}

func (t *restTransport) DeleteRows(ctx context.Context, table string, rows []int) error {
	reqs := make([]structuralRequest, 0, len(rows))
	for _, row := range rows {
		reqs = append(reqs, structuralRequest{
			DeleteDimension: &deleteDimension{
				Dimension:  "ROWS",
				StartIndex: row - 1, // wire indices are 0-based
				EndIndex:   row,
			},
		})
	}
	body := map[string][]structuralRequest{"requests": reqs}
	return t.do(ctx, "delete_rows", table, http.MethodPost, t.tableURL(table, ":batchUpdate"), body, nil)
}

func wireUpdates(updates []CellUpdate) []rangeUpdate {
	out := make([]rangeUpdate, 0, len(updates))
	for _, u := range updates {
		out = append(out, rangeUpdate{Range: u.Range, Values: [][]string{{u.Value}}})
	}
	return out
}

func (t *restTransport) tableURL(table, suffix string) string {
	return t.baseURL + "/v1/tables/" + url.PathEscape(table) + suffix
}

// do executes one HTTP exchange and classifies the outcome.
func (t *restTransport) do(ctx context.Context, op, table, method, rawURL string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTerminal, Op: op, Table: table, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return &Error{Kind: KindTerminal, Op: op, Table: table, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: classifyTransport(err), Op: op, Table: table, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{
			Kind:   classifyStatus(resp.StatusCode),
			Op:     op,
			Table:  table,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status: %d %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindTransient, Op: op, Table: table, Err: fmt.Errorf("decode response: %w", err)}
		}
	} else {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	}
	return nil
}

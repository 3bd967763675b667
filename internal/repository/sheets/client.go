package sheets

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/metrics"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Tab names in the spreadsheet.
const (
	TabSales  = "Sales"
	TabShifts = "Shifts"
	TabUsers  = "Users"
)

// Table is one tab of the spreadsheet. Row 1 is the header and is never
// returned; index 0 is the first data row.
type Table interface {
	Rows(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
	UpdateRow(ctx context.Context, index int, row []string) error
	DeleteRow(ctx context.Context, index int) error
}

// Client talks to one spreadsheet through the Sheets v4 API.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// NewClient authenticates with a service-account JSON key.
func NewClient(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*Client, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	svc, err := gsheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, database.Unavailable("create sheets service", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Ping fetches the spreadsheet metadata and caches the tab ids.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.sheetID(ctx, TabShifts)
	return err
}

// Table returns the tab called name. The header is written on first use if
// the tab is empty.
func (c *Client) Table(name string, header []string) Table {
	return &apiTable{client: c, name: name, header: header}
}

func (c *Client) sheetID(ctx context.Context, name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sheetIDs == nil {
		resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
		if err != nil {
			return 0, database.Unavailable("get spreadsheet", err)
		}
		ids := make(map[string]int64, len(resp.Sheets))
		for _, s := range resp.Sheets {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
		c.sheetIDs = ids
	}

	id, ok := c.sheetIDs[name]
	if !ok {
		return 0, database.Unavailable("get spreadsheet", fmt.Errorf("tab %q not found", name))
	}
	return id, nil
}

type apiTable struct {
	client *Client
	name   string
	header []string

	headerOnce sync.Once
	headerErr  error
}

func (t *apiTable) ensureHeader(ctx context.Context) error {
	t.headerOnce.Do(func() {
		resp, err := t.client.svc.Spreadsheets.Values.Get(t.client.spreadsheetID, t.name+"!1:1").Context(ctx).Do()
		if err != nil {
			t.headerErr = database.Unavailable("read header", err)
			return
		}
		if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
			return
		}
		_, err = t.client.svc.Spreadsheets.Values.Update(t.client.spreadsheetID, t.name+"!A1", &gsheets.ValueRange{
			Values: [][]interface{}{toCells(t.header)},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			t.headerErr = database.Unavailable("write header", err)
		}
	})
	return t.headerErr
}

func (t *apiTable) Rows(ctx context.Context) ([][]string, error) {
	defer metrics.ObserveStoreCall("sheets", "read", time.Now())
	resp, err := t.client.svc.Spreadsheets.Values.Get(t.client.spreadsheetID, t.name).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, database.Unavailable("read "+t.name, err)
	}

	if len(resp.Values) <= 1 {
		return [][]string{}, nil
	}

	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (t *apiTable) Append(ctx context.Context, row []string) error {
	defer metrics.ObserveStoreCall("sheets", "append", time.Now())
	if err := t.ensureHeader(ctx); err != nil {
		return err
	}
	_, err := t.client.svc.Spreadsheets.Values.Append(t.client.spreadsheetID, t.name+"!A1", &gsheets.ValueRange{
		Values: [][]interface{}{toCells(row)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return database.Unavailable("append "+t.name, err)
	}
	return nil
}

func (t *apiTable) UpdateRow(ctx context.Context, index int, row []string) error {
	defer metrics.ObserveStoreCall("sheets", "update", time.Now())
	// +2: one for the header, one because A1 notation is 1-based.
	rng := fmt.Sprintf("%s!A%d", t.name, index+2)
	_, err := t.client.svc.Spreadsheets.Values.Update(t.client.spreadsheetID, rng, &gsheets.ValueRange{
		Values: [][]interface{}{toCells(row)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return database.Unavailable("update "+t.name, err)
	}
	return nil
}

func (t *apiTable) DeleteRow(ctx context.Context, index int) error {
	defer metrics.ObserveStoreCall("sheets", "delete", time.Now())
	sheetID, err := t.client.sheetID(ctx, t.name)
	if err != nil {
		return err
	}

	start := int64(index + 1)
	_, err = t.client.svc.Spreadsheets.BatchUpdate(t.client.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: start,
					EndIndex:   start + 1,
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return database.Unavailable("delete "+t.name, err)
	}
	return nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

// cellString renders an unformatted cell without float exponents.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Package sheets backs the catalog store with a Google Sheets spreadsheet:
// one sheet per table, fixed column ranges, header row excluded. This is the
// production adapter; the spreadsheet doubles as the admin's editing surface.
package sheets

import (
	"context"
	"fmt"

	"github.com/acryfusion/storefront/internal/model"
	"github.com/acryfusion/storefront/internal/store"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	productsSheet = "products"
	imagesSheet   = "images"
	optionsSheet  = "options"

	// Data ranges skip the header row. Column spans are the positional
	// contract from the table schema.
	productsRange = "products!A2:N"
	imagesRange   = "images!A2:E"
	optionsRange  = "options!A2:H"
)

// Store reads and writes the three catalog sheets of one spreadsheet.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New builds a Store using a service-account credentials file.
func New(ctx context.Context, credentialsFile, spreadsheetID string) (*Store, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *Store) Products(ctx context.Context) ([]model.ProductRow, error) {
	values, err := s.readRange(ctx, productsRange)
	if err != nil {
		return nil, err
	}
	rows := make([]model.ProductRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, model.ProductRowFromCells(toCells(v)))
	}
	return rows, nil
}

func (s *Store) Images(ctx context.Context) ([]model.ImageRow, error) {
	values, err := s.readRange(ctx, imagesRange)
	if err != nil {
		return nil, err
	}
	rows := make([]model.ImageRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, model.ImageRowFromCells(toCells(v)))
	}
	return rows, nil
}

func (s *Store) Options(ctx context.Context) ([]model.OptionRow, error) {
	values, err := s.readRange(ctx, optionsRange)
	if err != nil {
		return nil, err
	}
	rows := make([]model.OptionRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, model.OptionRowFromCells(toCells(v)))
	}
	return rows, nil
}

func (s *Store) AppendProduct(ctx context.Context, row model.ProductRow) error {
	return s.appendRow(ctx, productsRange, row.Cells())
}

func (s *Store) AppendImage(ctx context.Context, row model.ImageRow) error {
	return s.appendRow(ctx, imagesRange, row.Cells())
}

func (s *Store) UpdateProduct(ctx context.Context, row model.ProductRow) error {
	idx, err := s.findProductRow(ctx, row.ProductID)
	if err != nil {
		return err
	}

	// Sheet rows are 1-based and the data starts under the header row.
	sheetRow := idx + 2
	target := fmt.Sprintf("%s!A%d:N%d", productsSheet, sheetRow, sheetRow)
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toValues(row.Cells())}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, target, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update product row: %w", err)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	idx, err := s.findProductRow(ctx, productID)
	if err != nil {
		return err
	}

	sheetID, err := s.sheetID(ctx, productsSheet)
	if err != nil {
		return err
	}

	// DeleteDimension indexes are 0-based and include the header row.
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(idx + 1),
					EndIndex:   int64(idx + 2),
				},
			},
		}},
	}
	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete product row: %w", err)
	}
	return nil
}

func (s *Store) readRange(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}
	return resp.Values, nil
}

func (s *Store) appendRow(ctx context.Context, appendRange string, cells []string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toValues(cells)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", appendRange, err)
	}
	return nil
}

// findProductRow returns the 0-based data row index of the product id.
func (s *Store) findProductRow(ctx context.Context, productID string) (int, error) {
	values, err := s.readRange(ctx, productsSheet+"!A2:A")
	if err != nil {
		return 0, err
	}
	for i, v := range values {
		cells := toCells(v)
		if len(cells) > 0 && cells[0] == productID {
			return i, nil
		}
	}
	return 0, store.ErrNotFound
}

// sheetID resolves a sheet title to its numeric grid id.
func (s *Store) sheetID(ctx context.Context, title string) (int64, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet", title)
}

func toValues(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func toCells(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[i] = s
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

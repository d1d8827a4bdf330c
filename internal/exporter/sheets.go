package exporter

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

var _ Exporter = (*SheetsExporter)(nil)

// SheetsExporter mirrors products into a Google Sheets spreadsheet.
type SheetsExporter struct {
	cfg config.Sheets
	svc *sheets.Service
}

func NewSheetsExporter(ctx context.Context, cfg config.Sheets) (*SheetsExporter, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("new sheets service: %w", err)
	}

	return &SheetsExporter{cfg: cfg, svc: svc}, nil
}

// ExportOne appends a single product row to the sheet.
func (e *SheetsExporter) ExportOne(ctx context.Context, product model.Product) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.ExportTimeout)
	defer cancel()

	valueRange := &sheets.ValueRange{
		Values: [][]any{productRow(product)},
	}

	if _, err := e.svc.Spreadsheets.Values.
		Append(e.cfg.SpreadsheetID, e.dataRange(), valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return "", fmt.Errorf("append product row: %w", err)
	}

	return e.link(), nil
}

// ExportAll replaces the sheet contents with a header and one row per
// product.
func (e *SheetsExporter) ExportAll(ctx context.Context, products []model.Product) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.ExportTimeout)
	defer cancel()

	if _, err := e.svc.Spreadsheets.Values.
		Clear(e.cfg.SpreadsheetID, e.dataRange(), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return "", fmt.Errorf("clear sheet: %w", err)
	}

	values := make([][]any, 0, len(products)+1)
	values = append(values, []any{
		"ID", "Product Name", "Model", "Price Per Quantity",
		"Unit Stock Quantity", "Total Price", "Status", "Updated At",
	})
	for _, product := range products {
		values = append(values, productRow(product))
	}

	if _, err := e.svc.Spreadsheets.Values.
		Update(e.cfg.SpreadsheetID, e.headRange(), &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return "", fmt.Errorf("update sheet: %w", err)
	}

	return e.link(), nil
}

func (e *SheetsExporter) dataRange() string {
	return fmt.Sprintf("%s!A:H", e.cfg.SheetName)
}

func (e *SheetsExporter) headRange() string {
	return fmt.Sprintf("%s!A1", e.cfg.SheetName)
}

func (e *SheetsExporter) link() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", e.cfg.SpreadsheetID)
}

func productRow(product model.Product) []any {
	return []any{
		product.ID.String(),
		product.ProductName,
		product.Model,
		product.PricePerQuantity,
		product.UnitStockQuantity,
		product.TotalPrice,
		string(product.Status),
		product.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Package exporter pushes product state to an external spreadsheet.
// Exports are best effort: the inventory service logs failures and
// never fails a business operation on an export error.
package exporter

import (
	"context"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

// Exporter mirrors product state to an external sheet. Both methods
// return a link to the exported sheet when one is available.
type Exporter interface {
	ExportOne(ctx context.Context, product model.Product) (string, error)
	ExportAll(ctx context.Context, products []model.Product) (string, error)
}

var _ Exporter = (*Disabled)(nil)

// Disabled is the exporter used when no spreadsheet credentials are
// configured. Export calls succeed without doing anything.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (Disabled) ExportOne(context.Context, model.Product) (string, error) {
	return "", nil
}

func (Disabled) ExportAll(context.Context, []model.Product) (string, error) {
	return "", nil
}

package config

import "time"

// Sheets configures the spreadsheet sync exporter. Both fields must be
// set for the exporter to be active; otherwise export calls are noops.
type Sheets struct {
	CredentialsFile string `env:"SHEETS_CREDENTIALS_FILE"`
	SpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	SheetName       string `env:"SHEETS_SHEET_NAME" envDefault:"Products"`

	ExportTimeout time.Duration `env:"SHEETS_EXPORT_TIMEOUT" envDefault:"15s"`
}

// Enabled reports whether the exporter is fully configured.
func (s Sheets) Enabled() bool {
	return s.CredentialsFile != "" && s.SpreadsheetID != ""
}

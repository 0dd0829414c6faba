package domain

import "context"

// SheetSource yields the sheets of a workbook in workbook order with original headers intact.
type SheetSource interface {
	ReadSheets(ctx context.Context, path string) ([]RawSheet, error)
}

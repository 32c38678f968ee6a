package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const inventorySheet = "Inventory"

var inventoryHeader = []any{"Category", "Type", "Item Name", "Description", "Price"}

// ExportSheet writes the loaded inventory to an xlsx workbook, loading it
// first if needed.
func (s *InventoryService) ExportSheet(ctx context.Context) ([]byte, error) {
	if !s.loaded {
		if _, err := s.LoadAll(ctx); err != nil {
			return nil, err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(inventorySheet, "A1", &inventoryHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range s.list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			item.CategoryName,
			string(item.IsVeg),
			item.Name,
			item.Description,
			item.Price.InexactFloat64(),
		}
		if err := f.SetSheetRow(inventorySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(s.list) > 0 {
		// built-in number format 2 is "0.00"
		style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return nil, fmt.Errorf("failed to create price style: %w", err)
		}
		last := fmt.Sprintf("E%d", len(s.list)+1)
		if err := f.SetCellStyle(inventorySheet, "E2", last, style); err != nil {
			return nil, fmt.Errorf("failed to style prices: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

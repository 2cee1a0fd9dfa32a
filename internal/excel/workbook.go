// Package excel renders ledger data as an Excel workbook: an Inventory
// sheet, a Sales_Log sheet and optional per-customer statement sheets.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/First-Work/pk-pos-final/internal/domain"
	"github.com/First-Work/pk-pos-final/internal/engine"
)

const (
	sheetInventory = "Inventory"
	sheetSalesLog  = "Sales_Log"
)

func BuildWorkbook(products []domain.Product, sales []domain.SaleRecord) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", sheetInventory); err != nil {
		return nil, fmt.Errorf("rename inventory sheet: %w", err)
	}
	if err := writeInventory(file, products); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(sheetSalesLog); err != nil {
		return nil, fmt.Errorf("create sales sheet: %w", err)
	}
	if err := writeSalesLog(file, sales); err != nil {
		return nil, err
	}
	return file, nil
}

func writeInventory(file *excelize.File, products []domain.Product) error {
	headers := []string{"SKU", "Name", "Category", "Price", "Stock", "Low Stock"}
	if err := writeRow(file, sheetInventory, 1, headers); err != nil {
		return err
	}
	for i, product := range products {
		lowStock := ""
		if product.Stock < engine.LowStockThreshold {
			lowStock = "LOW"
		}
		row := []any{product.SKU, product.Name, product.Category, product.Price, product.Stock, lowStock}
		if err := writeRow(file, sheetInventory, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSalesLog(file *excelize.File, sales []domain.SaleRecord) error {
	headers := []string{"ID", "Date", "Customer", "Method", "Items", "Total", "Paid", "Balance", "Status", "Notes"}
	if err := writeRow(file, sheetSalesLog, 1, headers); err != nil {
		return err
	}
	for i, sale := range sales {
		row := []any{
			sale.ID,
			sale.Date.Format("2006-01-02 15:04"),
			sale.CustomerName,
			sale.PaymentMethod,
			len(sale.Items),
			sale.Total,
			sale.AmountPaid,
			sale.Balance(),
			dueLabel(engine.Due(sale.Balance())),
			sale.Notes,
		}
		if err := writeRow(file, sheetSalesLog, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// AddStatementSheet appends a sheet with a customer's date-ordered
// statement rows and ending totals.
func AddStatementSheet(file *excelize.File, statement domain.Statement) error {
	sheet := "Statement - " + statement.CustomerName
	if len(sheet) > 31 {
		// Excel caps sheet names at 31 characters.
		sheet = sheet[:31]
	}
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("create statement sheet: %w", err)
	}

	headers := []string{"Date", "Ref", "Description", "Debit", "Credit", "Balance", "Status"}
	if err := writeRow(file, sheet, 1, headers); err != nil {
		return err
	}
	rowNo := 2
	for _, line := range statement.Lines {
		row := []any{
			line.Sale.Date.Format("2006-01-02"),
			line.Sale.ID,
			fmt.Sprintf("Sale (%d items) - %s", len(line.Sale.Items), line.Sale.PaymentMethod),
			line.Debit,
			line.Credit,
			line.Balance,
			dueLabel(line.IsDue),
		}
		if err := writeRow(file, sheet, rowNo, row); err != nil {
			return err
		}
		rowNo++
	}
	totals := []any{"", "", "Ending Balance", statement.TotalSales, statement.TotalPaid, statement.TotalDue, dueLabel(statement.IsDue)}
	return writeRow(file, sheet, rowNo, totals)
}

func dueLabel(isDue bool) string {
	if isDue {
		return "DUE"
	}
	return "PAID"
}

func writeRow[T any](file *excelize.File, sheet string, rowNo int, values []T) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
		if err != nil {
			return fmt.Errorf("cell name for %s row %d: %w", sheet, rowNo, err)
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

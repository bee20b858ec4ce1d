package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a minimal transaction workbook for loader tests.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "retail.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func transactionRows() [][]interface{} {
	return [][]interface{}{
		{"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID", "Country"},
		{"536365", "85123A", "WHITE HANGING HEART T-LIGHT HOLDER", "6", "2010-12-01 08:26:00", "2.55", "17850", "United Kingdom"},
		{"536368", "22960", "JAM MAKING SET WITH JARS", "3", "2010-12-01 08:34:00", "4.25", "13047", "United Kingdom"},
		{"C536379", "D", "Discount", "-1", "2010-12-01 09:41:00", "27.50", "14527", "United Kingdom"},
	}
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, "Online Retail", transactionRows())

	lines, err := LoadWorkbook(context.Background(), path, "")
	require.NoError(t, err)

	require.Len(t, lines, 3)
	assert.Equal(t, "536365", lines[0].InvoiceNo)
	assert.Equal(t, 6, lines[0].Quantity)
	assert.Equal(t, 2.55, lines[0].UnitPrice)
	assert.Equal(t, "United Kingdom", lines[0].Country)
	assert.Equal(t, -1, lines[2].Quantity)
}

func TestLoadWorkbookPinnedSheet(t *testing.T) {
	path := writeWorkbook(t, "Online Retail", transactionRows())

	lines, err := LoadWorkbook(context.Background(), path, "Online Retail")
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	_, err = LoadWorkbook(context.Background(), path, "No Such Sheet")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestLoadWorkbookNoTransactionSheet(t *testing.T) {
	path := writeWorkbook(t, "Notes", [][]interface{}{
		{"just", "some", "notes"},
		{"nothing", "tabular", "here"},
	})

	_, err := LoadWorkbook(context.Background(), path, "")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestLoadWorkbookMissingFile(t *testing.T) {
	_, err := LoadWorkbook(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"), "")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	path := writeWorkbook(t, "Online Retail", transactionRows())

	lines, err := Load(context.Background(), Source{File: path})
	require.NoError(t, err)
	assert.Len(t, lines, 3)
}

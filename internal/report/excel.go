package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cantinazo/api/internal/domain"
)

const sheetName = "Sheet1"

// WriteClosedOrders renders the closed-order rows as an xlsx workbook.
func WriteClosedOrders(w io.Writer, rows []domain.ClosedOrderRow) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{
		"Orden", "Representante", "Método de pago", "Referencia", "Total",
		"Estudiante", "Grado", "Sección", "Producto", "Precio",
	}
	writeHeaders(f, headers)

	for i, row := range rows {
		rowNo := i + 2
		reference := ""
		if row.ReferenceNumber != nil {
			reference = *row.ReferenceNumber
		}
		total := ""
		if row.TotalAmount != nil {
			total = row.TotalAmount.StringFixed(2)
		}

		f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), row.OrderID)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), row.RepresentativeName)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), row.PaymentMethod.Label())
		f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), reference)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), total)
		f.SetCellValue(sheetName, "F"+fmt.Sprint(rowNo), row.StudentName)
		f.SetCellValue(sheetName, "G"+fmt.Sprint(rowNo), domain.GradeLabel(row.Grade))
		f.SetCellValue(sheetName, "H"+fmt.Sprint(rowNo), row.Section)
		f.SetCellValue(sheetName, "I"+fmt.Sprint(rowNo), row.ProductName)
		f.SetCellValue(sheetName, "J"+fmt.Sprint(rowNo), row.ProductPrice.StringFixed(2))
	}

	return f.Write(w)
}

// WriteProductSales renders the product-sales rows as an xlsx workbook.
func WriteProductSales(w io.Writer, rows []domain.ProductSalesRow) error {
	f := excelize.NewFile()
	defer f.Close()

	writeHeaders(f, []string{"Producto", "Precio", "Disponible", "Vendidos"})

	for i, row := range rows {
		rowNo := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), row.Name)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), row.Price.StringFixed(2))
		f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), row.Stock)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), row.UnitsSold)
	}

	return f.Write(w)
}

func writeHeaders(f *excelize.File, headers []string) {
	col := 'A'
	for _, h := range headers {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}
}

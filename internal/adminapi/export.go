package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/rashedalhajeri/quickstore-builder/internal/orders"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

func registerExportRoutes() {
	webserver.ApiGET("/orders/export", exportOrdersXlsx)
	webserver.ApiGET("/products/export", exportProductsCsv)
}

// exportOrdersXlsx streams the store's orders as a spreadsheet.
func exportOrdersXlsx(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}

	rows, _, err := mods.Orders.Fetch(c.Request().Context(), store.ID, orders.FetchOptions{
		Status:   c.QueryParam("status"),
		PageSize: 10000,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	headers := []string{"Order Number", "Customer", "Email", "Phone", "Status", "Total", "Created At"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, h)
	}
	for i, o := range rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), o.OrderNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), o.CustomerName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), o.CustomerEmail)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), o.CustomerPhone)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), o.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), o.Total)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", r), common.FmtTime(o.CreatedAt))
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="orders-%s.xlsx"`, store.DomainName))
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

type productCsvRow struct {
	ID            string  `csv:"id"`
	Name          string  `csv:"name"`
	Price         float64 `csv:"price"`
	DiscountPrice string  `csv:"discount_price"`
	StockQuantity int     `csv:"stock_quantity"`
	Category      string  `csv:"category"`
	Active        bool    `csv:"active"`
	Archived      bool    `csv:"archived"`
	SalesCount    int     `csv:"sales_count"`
	Images        string  `csv:"images"`
}

// exportProductsCsv streams the store's catalog (archived included) as CSV.
func exportProductsCsv(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}

	rows, err := mods.Products.FetchWithFilters(c.Request().Context(), products.FetchOptions{
		StoreID:         store.ID,
		IncludeArchived: true,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	out := make([]productCsvRow, 0, len(rows))
	for _, p := range rows {
		row := productCsvRow{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
			Category:      p.CategoryName,
			Active:        p.IsActive,
			Archived:      p.IsArchived,
			SalesCount:    p.SalesCount,
			Images:        strings.Join(p.Images, "|"),
		}
		if p.DiscountPrice != nil {
			row.DiscountPrice = fmt.Sprintf("%.3f", *p.DiscountPrice)
		}
		out = append(out, row)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="products-%s.csv"`, store.DomainName))
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&out, c.Response())
}

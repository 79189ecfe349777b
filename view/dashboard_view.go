package view

import (
	"fmt"
	"io"

	"github.com/jrsteele09/bbdap-client/dashboard"
)

// RenderDashboard prints the KPI lines followed by the sales chart
func RenderDashboard(w io.Writer, d *dashboard.Dashboard) error {
	if _, err := fmt.Fprintf(w, "Dashboard\nTotal Sales: %s\nTotal Orders: %s\nAvg Order: %s\n\n",
		formatNumber(d.KPI.TotalSales),
		formatNumber(d.KPI.TotalOrders),
		formatNumber(d.KPI.AverageOrder),
	); err != nil {
		return err
	}
	return RenderLineChart(w, d.Series(), DefaultChartHeight)
}

func RenderForecast(w io.Writer, f *dashboard.Forecast) error {
	_, err := fmt.Fprintf(w, "Forecast next day: %s\n", formatNumber(f.NextDay))
	return err
}

func RenderStockAlerts(w io.Writer, alerts []dashboard.StockAlert) error {
	if len(alerts) == 0 {
		_, err := fmt.Fprintln(w, "No stock alerts")
		return err
	}
	for _, a := range alerts {
		if _, err := fmt.Fprintf(w, "%-24s %s\n", a.Product, a.Status); err != nil {
			return err
		}
	}
	return nil
}

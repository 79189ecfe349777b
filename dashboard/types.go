package dashboard

// KPISnapshot holds the aggregate figures shown at the top of the dashboard.
// It is refetched on every load and never persisted.
type KPISnapshot struct {
	TotalSales   float64 `json:"total_sales"`
	TotalOrders  float64 `json:"total_orders"`
	AverageOrder float64 `json:"average_order"`
}

// SalesPoint is one day of the sales series, in server order.
type SalesPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// ChartPoint is a SalesPoint mapped onto chart axes.
type ChartPoint struct {
	X string
	Y float64
}

// Dashboard is a fully loaded dashboard. A partial dashboard is never returned.
type Dashboard struct {
	KPI   KPISnapshot
	Sales []SalesPoint
}

// Series maps the sales records onto (x, y) chart points, preserving order.
func (d *Dashboard) Series() []ChartPoint {
	points := make([]ChartPoint, 0, len(d.Sales))
	for _, s := range d.Sales {
		points = append(points, ChartPoint{X: s.Date, Y: s.Sales})
	}
	return points
}

// Forecast is the moving average projection for the next day.
type Forecast struct {
	NextDay float64 `json:"forecast_next_day"`
}

type StockAlert struct {
	Product string `json:"product"`
	Status  string `json:"status"`
}

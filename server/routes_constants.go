package server

// Route path constants
const (
	RouteLogin      = "/login"
	RouteDashboard  = "/dashboard"
	RouteSales      = "/sales"
	RouteForecast   = "/forecast"
	RouteStockAlert = "/stock-alert"
	RouteHealth     = "/health"
)

package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("OPTIONS /", ChainMiddleware(noContent, s.APIMiddleware()...))

	// Token protected reporting routes
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.APIMiddleware(s.RequireToken())...))
	s.RegisterRouteHandler("GET "+RouteSales, ChainMiddleware(s.SalesHandler(), s.APIMiddleware(s.RequireToken())...))
	s.RegisterRouteHandler("GET "+RouteForecast, ChainMiddleware(s.ForecastHandler(), s.APIMiddleware(s.RequireToken())...))
	s.RegisterRouteHandler("GET "+RouteStockAlert, ChainMiddleware(s.StockAlertHandler(), s.APIMiddleware(s.RequireToken())...))
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/jrsteele09/bbdap-client/server/salesrepo"
	"github.com/rs/zerolog/log"
)

const lowStockStatus = "LOW STOCK"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type kpiResponse struct {
	TotalSales   float64 `json:"total_sales"`
	TotalOrders  int     `json:"total_orders"`
	AverageOrder float64 `json:"average_order"`
}

type salesPointResponse struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

type forecastResponse struct {
	ForecastNextDay float64 `json:"forecast_next_day"`
}

type stockAlertResponse struct {
	Product string `json:"product"`
	Status  string `json:"status"`
}

// HealthHandler reports that the server is up
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// LoginHandler exchanges the owner's credentials for a signed token
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request")
			return
		}

		if req.Username != s.ownerUsername || !CheckPasswordHash(req.Password, s.ownerPasswordHash) {
			log.Warn().Str("username", req.Username).Msg("login rejected")
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := s.creator.CreateAccessToken(req.Username)
		if err != nil {
			log.Error().Err(err).Msg("failed to create access token")
			writeMessage(w, http.StatusInternalServerError, "Could not create token")
			return
		}
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}

// DashboardHandler returns total sales, order count and the average order value
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		totals, err := s.repo.Totals(r.Context())
		if err != nil {
			log.Error().Err(err).Str("user", user).Msg("failed to load totals")
			writeMessage(w, http.StatusInternalServerError, "Could not load dashboard")
			return
		}

		var average float64
		if totals.TotalOrders > 0 {
			average = round2(totals.TotalSales / float64(totals.TotalOrders))
		}
		log.Debug().Str("user", user).Int("orders", totals.TotalOrders).Msg("dashboard served")
		writeJSON(w, http.StatusOK, kpiResponse{
			TotalSales:   totals.TotalSales,
			TotalOrders:  totals.TotalOrders,
			AverageOrder: average,
		})
	}
}

// SalesHandler returns daily sales in date order
func (s *Server) SalesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daily, err := s.repo.DailySales(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load daily sales")
			writeMessage(w, http.StatusInternalServerError, "Could not load sales")
			return
		}

		points := make([]salesPointResponse, 0, len(daily))
		for _, d := range daily {
			points = append(points, salesPointResponse{Date: d.Date, Sales: d.Sales})
		}
		writeJSON(w, http.StatusOK, points)
	}
}

// ForecastHandler projects next day sales as the daily average over the forecast window
func (s *Server) ForecastHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window := s.config.GetForecastWindow()
		days := math.Max(1, math.Round(window.Hours()/24))
		since := s.nowTime().Add(-window).Format(salesrepo.DateLayout)

		total, err := s.repo.SalesSince(r.Context(), since)
		if err != nil {
			log.Error().Err(err).Msg("failed to load recent sales")
			writeMessage(w, http.StatusInternalServerError, "Could not load forecast")
			return
		}
		writeJSON(w, http.StatusOK, forecastResponse{ForecastNextDay: round2(total / days)})
	}
}

// StockAlertHandler lists products below the low stock threshold
func (s *Server) StockAlertHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := s.repo.Products(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load products")
			writeMessage(w, http.StatusInternalServerError, "Could not load stock")
			return
		}

		threshold := s.config.GetLowStockThreshold()
		alerts := make([]stockAlertResponse, 0)
		for _, p := range products {
			if p.QuantityInStock < threshold {
				alerts = append(alerts, stockAlertResponse{Product: p.Name, Status: lowStockStatus})
			}
		}
		writeJSON(w, http.StatusOK, alerts)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

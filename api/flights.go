package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	ID                 int64  `json:"id"`
	Number             string `json:"number"`
	FromAirport        string `json:"from_airport"`
	ToAirport          string `json:"to_airport"`
	DepartureTime      string `json:"departure_time"`
	ArrivalTime        string `json:"arrival_time"`
	TotalSeats         int    `json:"total_seats"`
	EconomyPriceCents  int64  `json:"economy_price_cents"`
	BusinessPriceCents int64  `json:"business_price_cents"`
	FirstPriceCents    int64  `json:"first_price_cents"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]flightResponse, 0, len(all))
	for i := range all {
		responses = append(responses, toFlightResponse(&all[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:                 f.ID,
		Number:             f.Number,
		FromAirport:        f.FromAirport,
		ToAirport:          f.ToAirport,
		DepartureTime:      f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:        f.ArrivalTime.Format(time.RFC3339),
		TotalSeats:         f.TotalSeats,
		EconomyPriceCents:  f.EconomyPriceCents,
		BusinessPriceCents: f.BusinessPriceCents,
		FirstPriceCents:    f.FirstPriceCents,
	}
}

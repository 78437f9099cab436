package api

import (
	"context"
	"net/http"

	"github.com/avdonin/skybooking/internal/kafka"
	"github.com/avdonin/skybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// TransitionFeed is the dashboard's view of recent lifecycle activity,
// maintained by the feed worker.
type TransitionFeed interface {
	RecentTransitions(ctx context.Context, n int64) ([]kafka.BookingEvent, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

type AdminHandler struct {
	service booking.BookingUseCase
	feed    TransitionFeed
}

type changeStatusRequest struct {
	Status        string `json:"status"`
	DeclineReason string `json:"decline_reason"`
}

func NewAdminHandler(service booking.BookingUseCase, feed TransitionFeed) *AdminHandler {
	return &AdminHandler{service: service, feed: feed}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.list)
	router.PUT("/bookings/:id/status", h.changeStatus)
	router.DELETE("/bookings/:id", h.delete)
	router.GET("/dashboard", h.dashboard)
}

func (h *AdminHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *AdminHandler) changeStatus(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status, req.DeclineReason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *AdminHandler) delete(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	if h.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "transition feed is not configured"})
		return
	}

	recent, err := h.feed.RecentTransitions(c.Request.Context(), 20)
	if err != nil {
		respondError(c, err)
		return
	}
	counts, err := h.feed.StatusCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recent": recent, "status_counts": counts})
}

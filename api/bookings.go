package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/avdonin/skybooking/internal/repository"
	"github.com/avdonin/skybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	service    booking.BookingUseCase
	uploadsDir string
}

type createBookingRequest struct {
	UserID        int64  `json:"user_id"`
	FlightID      int64  `json:"flight_id"`
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	TravelClass   string `json:"travel_class"`
}

type bookingResponse struct {
	ID               int64  `json:"id"`
	FlightID         int64  `json:"flight_id"`
	PassengerName    string `json:"passenger_name"`
	Email            string `json:"email"`
	TravelClass      string `json:"travel_class"`
	TicketPriceCents int64  `json:"ticket_price_cents"`
	Status           string `json:"status"`
	PaymentReference string `json:"payment_reference,omitempty"`
	DeclineReason    string `json:"decline_reason,omitempty"`
	ReceiptAvailable bool   `json:"receipt_available"`
	CreatedAt        string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase, uploadsDir string) *BookingHandler {
	return &BookingHandler{service: service, uploadsDir: uploadsDir}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.POST("/:id/payment", h.recordPayment)
	router.GET("/:id/receipt", h.receipt)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:        req.UserID,
		FlightID:      req.FlightID,
		PassengerName: req.PassengerName,
		Email:         req.Email,
		Phone:         req.Phone,
		TravelClass:   req.TravelClass,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

// recordPayment accepts a multipart upload with the proof-of-payment image
// and an optional free-text reference. Storing the file is this layer's
// concern; the lifecycle core only sees the resulting path.
func (h *BookingHandler) recordPayment(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof file is required"})
		return
	}
	proofPath := filepath.Join(h.uploadsDir, fmt.Sprintf("proof-%d-%s%s", id, uuid.NewString(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, proofPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store proof"})
		return
	}

	updated, err := h.service.RecordPayment(c.Request.Context(), id, booking.RecordPaymentInput{
		Reference: c.PostForm("reference"),
		ProofPath: proofPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) receipt(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := h.service.GetReceipt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func bookingID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid booking id")
	}
	return id, nil
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound), errors.Is(err, repository.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:               b.ID,
		FlightID:         b.FlightID,
		PassengerName:    b.PassengerName,
		Email:            b.Email,
		TravelClass:      string(b.TravelClass),
		TicketPriceCents: b.TicketPriceCents,
		Status:           string(b.Status),
		PaymentReference: b.PaymentReference,
		DeclineReason:    b.DeclineReason,
		ReceiptAvailable: b.ReceiptPath != "",
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}

package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slauto/shopbooking/internal/domain"
	"github.com/slauto/shopbooking/internal/service/bookings"
)

const ServiceName = "sl-auto-booking-api"

type BookingHandler struct {
	service bookings.BookingUseCase
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router gin.IRouter) {
	router.GET("/health", h.health)
	router.GET("/api/bookings", h.list)
	router.POST("/api/bookings", h.create)
}

func (h *BookingHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(domain.TimestampLayout),
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("booking list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Server error while loading bookings."})
		return
	}
	if list == nil {
		list = []domain.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "bookings": list})
}

func (h *BookingHandler) create(c *gin.Context) {
	var submission bookings.Submission
	if err := c.ShouldBindJSON(&submission); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "Request body is too large."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "Validation failed.",
			"details": []string{"Request body must be a JSON object."},
		})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), submission)
	if err != nil {
		if errors.Is(err, bookings.ErrSpamRejected) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Spam rejected."})
			return
		}
		var vErr *bookings.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"error":   "Validation failed.",
				"details": vErr.Details,
			})
			return
		}
		log.Printf("booking save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Server error while saving booking request."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"id":      booking.ID,
		"message": "Booking request saved.",
	})
}

// NotFound echoes the unmatched method and path back to the caller.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"ok":    false,
		"error": "Not found: " + c.Request.Method + " " + c.Request.URL.Path,
	})
}

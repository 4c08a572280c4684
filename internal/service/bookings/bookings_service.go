package bookings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/slauto/shopbooking/internal/domain"
	"github.com/slauto/shopbooking/internal/kafka"
	"github.com/slauto/shopbooking/internal/repository"
	"github.com/slauto/shopbooking/internal/validator"
)

// Submission is the raw decoded JSON body of a booking request. It stays
// untyped only until sanitization; everything past the validator is a
// strongly typed record.
type Submission map[string]any

// ErrSpamRejected marks a submission whose honeypot field was filled in.
var ErrSpamRejected = errors.New("spam rejected")

// ValidationError carries every field-level problem found in a submission.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Details, " "))
}

type BookingUseCase interface {
	Create(ctx context.Context, submission Submission) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time

	mu     sync.Mutex
	lastID int64
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the service's time source.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	producer *kafka.Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	if producer != nil {
		service.producer = producer
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create runs a raw submission through the honeypot check, sanitization and
// validation, then appends the finished record to the store. The record is
// written exactly once or not at all.
func (s *BookingService) Create(ctx context.Context, submission Submission) (*domain.Booking, error) {
	if validator.Clean(submission["website"]) != "" {
		return nil, ErrSpamRejected
	}

	sanitized := validator.Sanitize(submission)
	if details := validator.Validate(sanitized); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	now := s.now()
	source := validator.Clean(submission["source"])
	if source == "" {
		source = domain.DefaultSource
	}

	booking := &domain.Booking{
		ID:            s.nextID(now),
		CreatedAt:     now.UTC().Format(domain.TimestampLayout),
		Source:        source,
		Status:        domain.StatusNew,
		Name:          sanitized.Name,
		Phone:         sanitized.Phone,
		Email:         sanitized.Email,
		ContactMethod: sanitized.ContactMethod,
		Year:          sanitized.Year,
		Make:          sanitized.Make,
		Model:         sanitized.Model,
		PreferredDate: sanitized.PreferredDate,
		TimeWindow:    sanitized.TimeWindow,
		ServiceType:   sanitized.ServiceType,
		Concern:       sanitized.Concern,
		VisitType:     sanitized.VisitType,
		Urgency:       sanitized.Urgency,
	}

	if err := s.bookings.Append(ctx, booking); err != nil {
		return nil, fmt.Errorf("append booking: %w", err)
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for %s: %v", booking.ID, err)
	}
	return booking, nil
}

// List returns every readable record, most recent first. The createdAt
// strings are fixed-width ISO-8601, so plain string comparison orders them
// chronologically.
func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt > bookings[j].CreatedAt
	})
	return bookings, nil
}

// nextID derives an id from the submission instant. The guard bumps the
// millisecond value when two creates land on the same tick, so ids stay
// unique within the process.
func (s *BookingService) nextID(now time.Time) string {
	millis := now.UnixMilli()

	s.mu.Lock()
	if millis <= s.lastID {
		millis = s.lastID + 1
	}
	s.lastID = millis
	s.mu.Unlock()

	return fmt.Sprintf("bk_%d", millis)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		ID:            booking.ID,
		CreatedAt:     booking.CreatedAt,
		Name:          booking.Name,
		Phone:         booking.Phone,
		Email:         booking.Email,
		ServiceType:   booking.ServiceType,
		PreferredDate: booking.PreferredDate,
		TimeWindow:    booking.TimeWindow,
		Source:        booking.Source,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)

package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/slauto/shopbooking/internal/domain"
	"github.com/slauto/shopbooking/internal/lock"
)

type BookingRepository interface {
	Append(ctx context.Context, booking *domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
}

// JSONLBookingRepository persists bookings as an append-only file of
// line-delimited JSON. Records are never rewritten or deleted; the listing
// side tolerates malformed lines by skipping them.
type JSONLBookingRepository struct {
	path string
	lock lock.Locker
}

func NewBookingRepository(path string, locker lock.Locker) BookingRepository {
	return &JSONLBookingRepository{path: path, lock: locker}
}

func (r *JSONLBookingRepository) Append(ctx context.Context, booking *domain.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	release, err := r.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire append lock: %w", err)
	}
	defer release()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	// One Write call for the whole line so a concurrent reader never sees a
	// partial record.
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("append booking: %w", err)
	}
	return f.Close()
}

func (r *JSONLBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	var bookings []domain.Booking
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var b domain.Booking
		if err := json.Unmarshal([]byte(line), &b); err != nil {
			// corrupt or half-written line, skip it
			continue
		}
		bookings = append(bookings, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	return bookings, nil
}

var _ BookingRepository = (*JSONLBookingRepository)(nil)

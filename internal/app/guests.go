package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"pts_hotel/internal/domain"
)

// GuestService records checked-in guests. A guest row is a denormalized
// echo of its booking; reports reconcile the two by name only.
type GuestService struct {
	repo  domain.Repository
	cache domain.Cache
}

func NewGuestService(r domain.Repository, c domain.Cache) *GuestService {
	return &GuestService{repo: r, cache: c}
}

// Register attaches a guest to an occupied room. If the room has an active
// booking the guest name is written onto it; otherwise a booking is created
// on the spot (walk-in).
func (s *GuestService) Register(ctx context.Context, name string, roomID int64, checkIn, checkOut time.Time) (domain.Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Guest{}, domain.Invalidf("guest name is required")
	}
	var out domain.Guest
	err := s.repo.Transact(ctx, func(r domain.Repository) error {
		room, err := r.GetRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if room.Status != domain.RoomOccupied {
			return domain.Conflictf("room %s is not occupied", room.RoomNumber)
		}

		b, err := r.ActiveBookingForRoom(ctx, room.ID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			nights, nerr := domain.Nights(checkIn, checkOut)
			if nerr != nil {
				return nerr
			}
			if _, cerr := r.CreateBooking(ctx, domain.Booking{
				GuestName:  name,
				RoomID:     room.ID,
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				Status:     domain.BookingActive,
				TotalPrice: room.Price * float64(nights),
			}); cerr != nil {
				return cerr
			}
		case err != nil:
			return err
		default:
			b.GuestName = name
			if uerr := r.UpdateBooking(ctx, b); uerr != nil {
				return uerr
			}
		}

		g, err := r.CreateGuest(ctx, domain.Guest{
			Name:     name,
			RoomID:   room.ID,
			CheckIn:  checkIn,
			CheckOut: checkOut,
		})
		if err != nil {
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return domain.Guest{}, err
	}
	invalidateBookingCaches(ctx, s.cache, checkIn, checkOut)
	return out, nil
}

func (s *GuestService) List(ctx context.Context) ([]domain.GuestView, error) {
	return s.repo.ListGuests(ctx)
}

package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"pts_hotel/internal/adapters/observability"
	"pts_hotel/internal/domain"
)

// BookingService is the booking ledger. Every mutation runs in a single
// repository transaction so booking state and the room occupancy flag
// commit together.
type BookingService struct {
	repo  domain.Repository
	cache domain.Cache
}

func NewBookingService(r domain.Repository, c domain.Cache) *BookingService {
	return &BookingService{repo: r, cache: c}
}

func (s *BookingService) Create(ctx context.Context, guestName string, roomID int64, checkIn, checkOut time.Time) (domain.BookingView, error) {
	var out domain.BookingView
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return out, domain.Invalidf("guest name is required")
	}
	err := s.repo.Transact(ctx, func(r domain.Repository) error {
		room, err := r.GetRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if room.Status != domain.RoomAvailable {
			return domain.Conflictf("room %s is not available", room.RoomNumber)
		}
		nights, err := domain.Nights(checkIn, checkOut)
		if err != nil {
			return err
		}
		b, err := r.CreateBooking(ctx, domain.Booking{
			GuestName:  guestName,
			RoomID:     room.ID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Status:     domain.BookingActive,
			TotalPrice: room.Price * float64(nights),
		})
		if err != nil {
			return err
		}
		// CAS: a racing create on the same room loses here and rolls back.
		if err := r.OccupyRoom(ctx, room.ID); err != nil {
			return err
		}
		room.Status = domain.RoomOccupied
		out = domain.BookingView{Booking: b, Room: &room}
		return nil
	})
	observability.ObserveBookingOp("create", err)
	if err != nil {
		return domain.BookingView{}, err
	}
	invalidateBookingCaches(ctx, s.cache, checkIn, checkOut)
	return out, nil
}

func (s *BookingService) Update(ctx context.Context, bookingID int64, guestName string, roomID int64, checkIn, checkOut time.Time) (domain.BookingView, error) {
	var out domain.BookingView
	var staleDays []time.Time
	err := s.repo.Transact(ctx, func(r domain.Repository) error {
		b, err := r.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Status == domain.BookingCancelled {
			return domain.Conflictf("cannot update cancelled booking %d", b.ID)
		}
		room, err := r.GetRoom(ctx, roomID)
		if errors.Is(err, domain.ErrNotFound) {
			// An unknown target room is bad input, not a missing resource.
			return domain.Invalidf("invalid room %d", roomID)
		} else if err != nil {
			return err
		}
		if room.ID != b.RoomID && room.Status != domain.RoomAvailable {
			return domain.Conflictf("room %s is not available", room.RoomNumber)
		}
		nights, err := domain.Nights(checkIn, checkOut)
		if err != nil {
			return err
		}

		staleDays = []time.Time{b.CheckIn, b.CheckOut, checkIn, checkOut}
		prevRoomID := b.RoomID
		b.GuestName = strings.TrimSpace(guestName)
		b.RoomID = room.ID
		b.CheckIn = checkIn
		b.CheckOut = checkOut
		b.TotalPrice = room.Price * float64(nights)
		if err := r.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if prevRoomID != room.ID {
			if err := r.SetRoomStatus(ctx, prevRoomID, domain.RoomAvailable); err != nil {
				return err
			}
			if err := r.OccupyRoom(ctx, room.ID); err != nil {
				return err
			}
			room.Status = domain.RoomOccupied
		}
		out = domain.BookingView{Booking: b, Room: &room}
		return nil
	})
	observability.ObserveBookingOp("update", err)
	if err != nil {
		return domain.BookingView{}, err
	}
	invalidateBookingCaches(ctx, s.cache, staleDays...)
	return out, nil
}

// Cancel marks the booking cancelled and frees its room unconditionally,
// even if another active booking still references the room. Re-cancelling
// a cancelled booking is allowed and re-frees the room.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) (domain.BookingView, error) {
	var out domain.BookingView
	var staleDays []time.Time
	err := s.repo.Transact(ctx, func(r domain.Repository) error {
		b, err := r.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		b.Status = domain.BookingCancelled
		if err := r.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if err := r.SetRoomStatus(ctx, b.RoomID, domain.RoomAvailable); err != nil {
			return err
		}
		room, err := r.GetRoom(ctx, b.RoomID)
		if err != nil {
			return err
		}
		staleDays = []time.Time{b.CheckIn, b.CheckOut}
		out = domain.BookingView{Booking: b, Room: &room}
		return nil
	})
	observability.ObserveBookingOp("cancel", err)
	if err != nil {
		return domain.BookingView{}, err
	}
	invalidateBookingCaches(ctx, s.cache, staleDays...)
	return out, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.BookingView, error) {
	return s.repo.ListBookings(ctx)
}

package domain

import (
	"context"
	"time"
)

type Repository interface {
	// Rooms
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	SetRoomStatus(ctx context.Context, id int64, status RoomStatus) error
	// OccupyRoom flips an available room to occupied; returns ErrConflict
	// if the room is no longer available (compare-and-swap on status).
	OccupyRoom(ctx context.Context, id int64) error
	ListRooms(ctx context.Context) ([]Room, error)
	ListRoomsByStatus(ctx context.Context, status RoomStatus) ([]Room, error)

	// Bookings
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	UpdateBooking(ctx context.Context, b Booking) error
	ListBookings(ctx context.Context) ([]BookingView, error)
	ActiveBookingForRoom(ctx context.Context, roomID int64) (Booking, error)

	// Guests
	CreateGuest(ctx context.Context, g Guest) (Guest, error)
	ListGuests(ctx context.Context) ([]GuestView, error)

	// Transact runs fn against a repository bound to a single transaction.
	// Mutations touching both a room and a booking go through here so the
	// pair commits or rolls back as one unit.
	Transact(ctx context.Context, fn func(Repository) error) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

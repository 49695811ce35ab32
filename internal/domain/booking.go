package domain

import "time"

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID         int64
	GuestName  string
	RoomID     int64
	CheckIn    time.Time
	CheckOut   time.Time
	Status     BookingStatus
	TotalPrice float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookingView is a booking joined with its room snapshot, the shape the
// HTTP layer and reports consume.
type BookingView struct {
	Booking
	Room *Room
}

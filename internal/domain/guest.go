package domain

import "time"

// Guest is a denormalized check-in record. Reports reconcile it against
// bookings by name equality only; there is no foreign key to Booking.
type Guest struct {
	ID        int64
	Name      string
	RoomID    int64
	CheckIn   time.Time
	CheckOut  time.Time
	CreatedAt time.Time
}

type GuestView struct {
	Guest
	Room *Room
}

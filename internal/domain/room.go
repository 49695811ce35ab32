package domain

import "time"

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomOccupied  RoomStatus = "occupied"
)

func (s RoomStatus) Valid() bool {
	return s == RoomAvailable || s == RoomOccupied
}

type Room struct {
	ID         int64
	RoomNumber string
	Type       RoomType
	Price      float64 // nightly rate
	Status     RoomStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

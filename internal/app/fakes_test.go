package app_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"pts_hotel/internal/domain"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// memRepo is an in-memory domain.Repository for unit tests. Transact just
// runs the closure; tests are single-threaded, so partial-failure rollback
// is not simulated here (the MySQL integration test covers real tx scope).
type memRepo struct {
	mu          sync.Mutex
	rooms       map[int64]domain.Room
	bookings    map[int64]domain.Booking
	guests      map[int64]domain.Guest
	nextRoom    int64
	nextBooking int64
	nextGuest   int64
	now         time.Time // stamped onto created records
}

func newMemRepo(now time.Time) *memRepo {
	return &memRepo{
		rooms:    map[int64]domain.Room{},
		bookings: map[int64]domain.Booking{},
		guests:   map[int64]domain.Guest{},
		now:      now,
	}
}

func (m *memRepo) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *memRepo) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.RoomNumber == room.RoomNumber {
			return domain.Room{}, domain.Invalidf("room number %q already exists", room.RoomNumber)
		}
	}
	m.nextRoom++
	room.ID = m.nextRoom
	room.CreatedAt = m.now
	room.UpdatedAt = m.now
	m.rooms[room.ID] = room
	return room, nil
}

func (m *memRepo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, domain.NotFoundf("room %d", id)
	}
	return room, nil
}

func (m *memRepo) SetRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return domain.NotFoundf("room %d", id)
	}
	room.Status = status
	m.rooms[id] = room
	return nil
}

func (m *memRepo) OccupyRoom(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok || room.Status != domain.RoomAvailable {
		return domain.Conflictf("room %d is not available", id)
	}
	room.Status = domain.RoomOccupied
	m.rooms[id] = room
	return nil
}

func (m *memRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) ListRoomsByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Room
	for _, r := range m.rooms {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBooking++
	b.ID = m.nextBooking
	b.CreatedAt = m.now
	b.UpdatedAt = m.now
	m.bookings[b.ID] = b
	return b, nil
}

func (m *memRepo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.NotFoundf("booking %d", id)
	}
	return b, nil
}

func (m *memRepo) UpdateBooking(ctx context.Context, b domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[b.ID]; !ok {
		return domain.NotFoundf("booking %d", b.ID)
	}
	b.UpdatedAt = m.now
	m.bookings[b.ID] = b
	return nil
}

func (m *memRepo) ActiveBookingForRoom(ctx context.Context, roomID int64) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.Booking
	for id := range m.bookings {
		b := m.bookings[id]
		if b.RoomID == roomID && b.Status == domain.BookingActive {
			if best == nil || b.ID < best.ID {
				best = &b
			}
		}
	}
	if best == nil {
		return domain.Booking{}, domain.NotFoundf("no active booking for room %d", roomID)
	}
	return *best, nil
}

func (m *memRepo) ListBookings(ctx context.Context) ([]domain.BookingView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.BookingView, 0, len(m.bookings))
	for _, b := range m.bookings {
		v := domain.BookingView{Booking: b}
		if room, ok := m.rooms[b.RoomID]; ok {
			r := room
			v.Room = &r
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memRepo) CreateGuest(ctx context.Context, g domain.Guest) (domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextGuest++
	g.ID = m.nextGuest
	g.CreatedAt = m.now
	m.guests[g.ID] = g
	return g, nil
}

func (m *memRepo) ListGuests(ctx context.Context) ([]domain.GuestView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.GuestView, 0, len(m.guests))
	for _, g := range m.guests {
		v := domain.GuestView{Guest: g}
		if room, ok := m.rooms[g.RoomID]; ok {
			r := room
			v.Room = &r
		}
		out = append(out, v)
	}
	return out, nil
}

// fakeCache stores marshaled JSON so any value type round-trips.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

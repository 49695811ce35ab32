package app

import (
	"context"
	"strings"
	"time"

	"pts_hotel/internal/domain"
)

// RoomService owns the room registry: registration, status changes and the
// available-rooms listing the booking desk works from.
type RoomService struct {
	repo     domain.Repository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewRoomService(r domain.Repository, c domain.Cache, ttl time.Duration) *RoomService {
	return &RoomService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *RoomService) Register(ctx context.Context, roomNumber string, typ domain.RoomType, price float64) (domain.Room, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return domain.Room{}, domain.Invalidf("room number is required")
	}
	if !typ.Valid() {
		return domain.Room{}, domain.Invalidf("unknown room type %q", typ)
	}
	if price <= 0 {
		return domain.Room{}, domain.Invalidf("price must be positive, got %v", price)
	}
	room, err := s.repo.CreateRoom(ctx, domain.Room{
		RoomNumber: roomNumber,
		Type:       typ,
		Price:      price,
		Status:     domain.RoomAvailable,
	})
	if err != nil {
		return domain.Room{}, err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, availableRoomsKey)
	}
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (domain.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *RoomService) SetStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	if !status.Valid() {
		return domain.Invalidf("unknown room status %q", status)
	}
	if err := s.repo.SetRoomStatus(ctx, id, status); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, availableRoomsKey)
	}
	return nil
}

func (s *RoomService) ListAvailable(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, availableRoomsKey, &rooms); ok {
			return rooms, nil
		}
	}
	rooms, err := s.repo.ListRoomsByStatus(ctx, domain.RoomAvailable)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, availableRoomsKey, rooms, s.cacheTTL)
	}
	return rooms, nil
}

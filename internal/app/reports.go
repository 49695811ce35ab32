package app

import (
	"context"
	"math"
	"time"

	"pts_hotel/internal/domain"
)

// ReportService derives occupancy and revenue aggregates. The dashboard is
// day-scoped over active bookings; the occupancy and financial reports scan
// all bookings regardless of date or status. The divergence mirrors current
// business reporting and is pinned by tests; do not unify casually.
type ReportService struct {
	repo     domain.Repository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewReportService(r domain.Repository, c domain.Cache, ttl time.Duration) *ReportService {
	return &ReportService{repo: r, cache: c, cacheTTL: ttl}
}

type DashboardSnapshot struct {
	TotalRooms    int     `json:"totalRooms"`
	OccupiedRooms int     `json:"occupiedRooms"`
	OccupancyRate float64 `json:"occupancyRate"` // percent, 2 decimals
	TodayBookings int     `json:"todayBookings"` // active bookings created on the reference day
	Revenue       float64 `json:"revenue"`       // active bookings overlapping the reference day
}

type BookingDetail struct {
	RoomNumber    string               `json:"roomNumber"`
	RoomStatus    domain.RoomStatus    `json:"roomStatus"`
	RoomType      domain.RoomType      `json:"roomType"`
	RoomPrice     float64              `json:"roomPrice"`
	GuestName     string               `json:"guestName"`
	BookingStatus domain.BookingStatus `json:"bookingStatus"`
	CheckIn       time.Time            `json:"checkIn"`
	CheckOut      time.Time            `json:"checkOut"`
	Price         float64              `json:"price"`
}

type OccupancyReport struct {
	TotalRooms    int             `json:"totalRooms"`
	OccupiedRooms int             `json:"occupiedRooms"`
	OccupancyRate float64         `json:"occupancyRate"`
	Details       []BookingDetail `json:"details"`
}

type FinancialReport struct {
	TotalRevenue float64         `json:"totalRevenue"`
	BookingCount int             `json:"bookingCount"`
	Details      []BookingDetail `json:"details"`
}

type ReportData struct {
	Rooms    []domain.Room        `json:"rooms"`
	Bookings []domain.BookingView `json:"bookings"`
	Guests   []domain.GuestView   `json:"guests"`
}

// Dashboard computes the day snapshot for the given reference instant.
// Cached per calendar day; booking mutations invalidate the touched days.
func (s *ReportService) Dashboard(ctx context.Context, ref time.Time) (DashboardSnapshot, error) {
	key := dashboardKey(ref)
	var snap DashboardSnapshot
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &snap); ok {
			return snap, nil
		}
	}

	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return DashboardSnapshot{}, err
	}
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return DashboardSnapshot{}, err
	}

	dayStart, dayEnd := domain.DayBounds(ref)
	occupied := map[int64]bool{}
	var revenue float64
	todayCount := 0
	for _, b := range bookings {
		if b.Status != domain.BookingActive {
			continue
		}
		if within(b.CreatedAt, dayStart, dayEnd) {
			todayCount++
		}
		if !domain.OverlapsDay(b.CheckIn, b.CheckOut, ref) {
			continue
		}
		occupied[b.RoomID] = true
		revenue += bookingPrice(b)
	}

	snap = DashboardSnapshot{
		TotalRooms:    len(rooms),
		OccupiedRooms: len(occupied),
		OccupancyRate: rate(len(occupied), len(rooms)),
		TodayBookings: todayCount,
		Revenue:       revenue,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, snap, s.cacheTTL)
	}
	return snap, nil
}

// DailyBookingCount counts active bookings whose creation timestamp falls
// on the reference day. Stay dates are irrelevant here.
func (s *ReportService) DailyBookingCount(ctx context.Context, ref time.Time) (int, error) {
	snap, err := s.Dashboard(ctx, ref)
	if err != nil {
		return 0, err
	}
	return snap.TodayBookings, nil
}

// DailyRevenue sums the price of active bookings overlapping the reference day.
func (s *ReportService) DailyRevenue(ctx context.Context, ref time.Time) (float64, error) {
	snap, err := s.Dashboard(ctx, ref)
	if err != nil {
		return 0, err
	}
	return snap.Revenue, nil
}

// Occupancy builds the all-time occupancy report: every booking, any status,
// joined to its room and to a guest record matched by name.
func (s *ReportService) Occupancy(ctx context.Context) (OccupancyReport, error) {
	rooms, bookings, guests, err := s.loadAll(ctx)
	if err != nil {
		return OccupancyReport{}, err
	}

	occupied := map[int64]bool{}
	details := make([]BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		if b.Room == nil {
			continue
		}
		occupied[b.Room.ID] = true
		details = append(details, BookingDetail{
			RoomNumber:    b.Room.RoomNumber,
			RoomStatus:    b.Room.Status,
			RoomType:      b.Room.Type,
			RoomPrice:     b.Room.Price,
			GuestName:     resolveGuestName(guests, b.GuestName),
			BookingStatus: b.Status,
			CheckIn:       b.CheckIn,
			CheckOut:      b.CheckOut,
			Price:         b.TotalPrice,
		})
	}
	return OccupancyReport{
		TotalRooms:    len(rooms),
		OccupiedRooms: len(occupied),
		OccupancyRate: rate(len(occupied), len(rooms)),
		Details:       details,
	}, nil
}

// Financial builds the all-time financial report. Revenue is recomputed from
// the room's nightly price for every booking with a room and both dates,
// cancelled bookings included.
func (s *ReportService) Financial(ctx context.Context) (FinancialReport, error) {
	_, bookings, guests, err := s.loadAll(ctx)
	if err != nil {
		return FinancialReport{}, err
	}

	var revenue float64
	details := make([]BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		if b.Room == nil {
			continue
		}
		var price float64
		if nights, nerr := domain.Nights(b.CheckIn, b.CheckOut); nerr == nil {
			price = b.Room.Price * float64(nights)
			revenue += price
		}
		details = append(details, BookingDetail{
			RoomNumber:    b.Room.RoomNumber,
			RoomStatus:    b.Room.Status,
			RoomType:      b.Room.Type,
			RoomPrice:     b.Room.Price,
			GuestName:     resolveGuestName(guests, b.GuestName),
			BookingStatus: b.Status,
			CheckIn:       b.CheckIn,
			CheckOut:      b.CheckOut,
			Price:         price,
		})
	}
	return FinancialReport{
		TotalRevenue: revenue,
		BookingCount: len(bookings),
		Details:      details,
	}, nil
}

// Data returns the raw joined aggregate external renderers consume.
func (s *ReportService) Data(ctx context.Context) (ReportData, error) {
	rooms, bookings, guests, err := s.loadAll(ctx)
	if err != nil {
		return ReportData{}, err
	}
	return ReportData{Rooms: rooms, Bookings: bookings, Guests: guests}, nil
}

func (s *ReportService) loadAll(ctx context.Context) ([]domain.Room, []domain.BookingView, []domain.GuestView, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	guests, err := s.repo.ListGuests(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return rooms, bookings, guests, nil
}

// resolveGuestName prefers a guest record matching the booking's stored
// name, then the stored name itself, then a placeholder.
func resolveGuestName(guests []domain.GuestView, bookingGuest string) string {
	for _, g := range guests {
		if g.Name == bookingGuest && g.Name != "" {
			return g.Name
		}
	}
	if bookingGuest != "" {
		return bookingGuest
	}
	return "Unknown Guest"
}

// bookingPrice falls back to recomputing from the room rate when the stored
// total is missing.
func bookingPrice(b domain.BookingView) float64 {
	if b.TotalPrice > 0 {
		return b.TotalPrice
	}
	if b.Room == nil {
		return 0
	}
	nights, err := domain.Nights(b.CheckIn, b.CheckOut)
	if err != nil {
		return 0
	}
	return b.Room.Price * float64(nights)
}

func rate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*100*100) / 100
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pts_hotel/internal/app"
	"pts_hotel/internal/domain"
)

type Handlers struct {
	Rooms    *app.RoomService
	Bookings *app.BookingService
	Guests   *app.GuestService
	Reports  *app.ReportService
	Now      func() time.Time // injected clock for reference-instant defaults
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/rooms", h.listAvailableRooms)
	s.mux.Post("/v1/rooms", h.registerRoom)

	s.mux.Get("/v1/bookings", h.listBookings)
	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Put("/v1/bookings/{id}", h.updateBooking)
	s.mux.Put("/v1/bookings/{id}/cancel", h.cancelBooking)

	s.mux.Get("/v1/guests", h.listGuests)
	s.mux.Post("/v1/guests", h.registerGuest)

	s.mux.Get("/v1/dashboard", h.dashboard)
	s.mux.Get("/v1/reports/occupancy", h.occupancyReport)
	s.mux.Get("/v1/reports/financial", h.financialReport)
	s.mux.Get("/v1/reports/data", h.reportData)
}

// ---- wire shapes ----

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type roomJSON struct {
	ID         int64   `json:"id"`
	RoomNumber string  `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

type bookingJSON struct {
	ID         int64     `json:"id"`
	GuestName  string    `json:"guestName"`
	Room       *roomJSON `json:"room"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

type guestJSON struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Room     *roomJSON `json:"room,omitempty"`
	RoomID   int64     `json:"roomId"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

type registerRoomReq struct {
	RoomNumber string  `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
}

type bookingReq struct {
	GuestName string `json:"guestName"`
	RoomID    int64  `json:"roomId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
}

type registerGuestReq struct {
	Name     string `json:"name"`
	RoomID   int64  `json:"roomId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

func toRoomJSON(room domain.Room) *roomJSON {
	return &roomJSON{
		ID:         room.ID,
		RoomNumber: room.RoomNumber,
		Type:       string(room.Type),
		Price:      room.Price,
		Status:     string(room.Status),
	}
}

func toBookingJSON(v domain.BookingView) bookingJSON {
	out := bookingJSON{
		ID:         v.ID,
		GuestName:  v.GuestName,
		CheckIn:    v.CheckIn,
		CheckOut:   v.CheckOut,
		Status:     string(v.Status),
		TotalPrice: v.TotalPrice,
		CreatedAt:  v.CreatedAt,
	}
	if v.Room != nil {
		out.Room = toRoomJSON(*v.Room)
	}
	return out
}

// ---- plumbing ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Storage Unavailable", "try again later")
		log.Error().Err(err).Msg("storage unavailable")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "unexpected error")
		log.Error().Err(err).Msg("unhandled error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.Invalidf("bad date %q, want RFC3339 or YYYY-MM-DD", s)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.Invalidf("id must be a number")
	}
	return id, nil
}

// ---- rooms ----

func (h *Handlers) registerRoom(w http.ResponseWriter, r *http.Request) {
	var req registerRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	room, err := h.Rooms.Register(r.Context(), req.RoomNumber, domain.RoomType(req.Type), req.Price)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomJSON(room))
}

func (h *Handlers) listAvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Rooms.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]*roomJSON, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomJSON(room))
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	req, checkIn, checkOut, err := decodeBookingReq(r)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.Bookings.Create(r.Context(), req.GuestName, req.RoomID, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingJSON(v))
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req, checkIn, checkOut, err := decodeBookingReq(r)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.Bookings.Update(r.Context(), id, req.GuestName, req.RoomID, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingJSON(v))
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.Bookings.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingJSON(v))
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	views, err := h.Bookings.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]bookingJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toBookingJSON(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeBookingReq(r *http.Request) (bookingReq, time.Time, time.Time, error) {
	var req bookingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, time.Time{}, time.Time{}, domain.Invalidf("malformed JSON body")
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return req, time.Time{}, time.Time{}, err
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return req, time.Time{}, time.Time{}, err
	}
	return req, checkIn, checkOut, nil
}

// ---- guests ----

func (h *Handlers) registerGuest(w http.ResponseWriter, r *http.Request) {
	var req registerGuestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		writeError(w, err)
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := h.Guests.Register(r.Context(), req.Name, req.RoomID, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, guestJSON{
		ID: g.ID, Name: g.Name, RoomID: g.RoomID, CheckIn: g.CheckIn, CheckOut: g.CheckOut,
	})
}

func (h *Handlers) listGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.Guests.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]guestJSON, 0, len(guests))
	for _, g := range guests {
		gj := guestJSON{ID: g.ID, Name: g.Name, RoomID: g.RoomID, CheckIn: g.CheckIn, CheckOut: g.CheckOut}
		if g.Room != nil {
			gj.Room = toRoomJSON(*g.Room)
		}
		out = append(out, gj)
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- dashboard & reports ----

// referenceInstant takes an explicit ?date= when given, so the dashboard is
// reproducible; otherwise the injected clock supplies "now".
func (h *Handlers) referenceInstant(r *http.Request) (time.Time, error) {
	if d := r.URL.Query().Get("date"); d != "" {
		return parseDate(d)
	}
	return h.Now(), nil
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	ref, err := h.referenceInstant(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.Reports.Dashboard(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) occupancyReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Reports.Occupancy(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *Handlers) financialReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Reports.Financial(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *Handlers) reportData(w http.ResponseWriter, r *http.Request) {
	data, err := h.Reports.Data(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

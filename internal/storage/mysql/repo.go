package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"

	"pts_hotel/internal/domain"
)

// queryer is satisfied by *sql.DB and *sql.Tx; every query in the repo runs
// against it so the same code serves both transactional and plain paths.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repo struct {
	db *sql.DB
	q  queryer
}

func New(db *sql.DB) *Repo { return &Repo{db: db, q: db} }

func (r *Repo) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	if _, ok := r.q.(*sql.Tx); ok {
		// already inside a transaction; reuse it
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return storageErr("begin tx", err)
	}
	if err := fn(&Repo{db: r.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit tx", err)
	}
	return nil
}

const dupEntryErrNo = 1062

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}

// ---------- rooms ----------

func (r *Repo) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	res, err := r.q.ExecContext(ctx, insertRoomSQL,
		room.RoomNumber, string(room.Type), room.Price, string(room.Status))
	if err != nil {
		var me *mysqldrv.MySQLError
		if errors.As(err, &me) && me.Number == dupEntryErrNo {
			return domain.Room{}, domain.Invalidf("room number %q already exists", room.RoomNumber)
		}
		return domain.Room{}, storageErr("insert room", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Room{}, storageErr("room insert id", err)
	}
	return r.GetRoom(ctx, id)
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	room, err := scanRoom(r.q.QueryRowContext(ctx, getRoomSQL, id))
	if err == sql.ErrNoRows {
		return domain.Room{}, domain.NotFoundf("room %d", id)
	}
	if err != nil {
		return domain.Room{}, storageErr("get room", err)
	}
	return room, nil
}

func (r *Repo) SetRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	if _, err := r.q.ExecContext(ctx, setRoomStatusSQL, string(status), id); err != nil {
		return storageErr("set room status", err)
	}
	return nil
}

func (r *Repo) OccupyRoom(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, occupyRoomSQL, id)
	if err != nil {
		return storageErr("occupy room", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("occupy room rows", err)
	}
	if n == 0 {
		return domain.Conflictf("room %d is not available", id)
	}
	return nil
}

func (r *Repo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return r.queryRooms(ctx, listRoomsSQL)
}

func (r *Repo) ListRoomsByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	return r.queryRooms(ctx, listRoomsByStatusSQL, string(status))
}

func (r *Repo) queryRooms(ctx context.Context, query string, args ...any) ([]domain.Room, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list rooms", err)
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var room domain.Room
		var typ, status string
		if err := rows.Scan(&room.ID, &room.RoomNumber, &typ, &room.Price, &status,
			&room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, storageErr("scan room", err)
		}
		room.Type = domain.RoomType(typ)
		room.Status = domain.RoomStatus(status)
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list rooms", err)
	}
	return out, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRoom(row rowScanner) (domain.Room, error) {
	var room domain.Room
	var typ, status string
	if err := row.Scan(&room.ID, &room.RoomNumber, &typ, &room.Price, &status,
		&room.CreatedAt, &room.UpdatedAt); err != nil {
		return domain.Room{}, err
	}
	room.Type = domain.RoomType(typ)
	room.Status = domain.RoomStatus(status)
	return room, nil
}

// ---------- bookings ----------

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	res, err := r.q.ExecContext(ctx, insertBookingSQL,
		b.GuestName, b.RoomID, b.CheckIn, b.CheckOut, string(b.Status), b.TotalPrice)
	if err != nil {
		return domain.Booking{}, storageErr("insert booking", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Booking{}, storageErr("booking insert id", err)
	}
	return r.GetBooking(ctx, id)
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := scanBooking(r.q.QueryRowContext(ctx, getBookingSQL, id))
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.NotFoundf("booking %d", id)
	}
	if err != nil {
		return domain.Booking{}, storageErr("get booking", err)
	}
	return b, nil
}

func (r *Repo) UpdateBooking(ctx context.Context, b domain.Booking) error {
	_, err := r.q.ExecContext(ctx, updateBookingSQL,
		b.GuestName, b.RoomID, b.CheckIn, b.CheckOut, string(b.Status), b.TotalPrice, b.ID)
	if err != nil {
		return storageErr("update booking", err)
	}
	return nil
}

func (r *Repo) ActiveBookingForRoom(ctx context.Context, roomID int64) (domain.Booking, error) {
	b, err := scanBooking(r.q.QueryRowContext(ctx, activeBookingForRoomSQL, roomID))
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.NotFoundf("no active booking for room %d", roomID)
	}
	if err != nil {
		return domain.Booking{}, storageErr("active booking for room", err)
	}
	return b, nil
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var status string
	if err := row.Scan(&b.ID, &b.GuestName, &b.RoomID, &b.CheckIn, &b.CheckOut,
		&status, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func (r *Repo) ListBookings(ctx context.Context) ([]domain.BookingView, error) {
	rows, err := r.q.QueryContext(ctx, listBookingsSQL)
	if err != nil {
		return nil, storageErr("list bookings", err)
	}
	defer rows.Close()

	var out []domain.BookingView
	for rows.Next() {
		var v domain.BookingView
		var bStatus string
		var (
			roomID               sql.NullInt64
			roomNumber           sql.NullString
			roomType, roomStatus sql.NullString
			roomPrice            sql.NullFloat64
			roomCreated          sql.NullTime
			roomUpdated          sql.NullTime
		)
		if err := rows.Scan(
			&v.ID, &v.GuestName, &v.RoomID, &v.CheckIn, &v.CheckOut, &bStatus,
			&v.TotalPrice, &v.CreatedAt, &v.UpdatedAt,
			&roomID, &roomNumber, &roomType, &roomPrice, &roomStatus,
			&roomCreated, &roomUpdated,
		); err != nil {
			return nil, storageErr("scan booking", err)
		}
		v.Status = domain.BookingStatus(bStatus)
		if roomID.Valid {
			v.Room = &domain.Room{
				ID:         roomID.Int64,
				RoomNumber: roomNumber.String,
				Type:       domain.RoomType(roomType.String),
				Price:      roomPrice.Float64,
				Status:     domain.RoomStatus(roomStatus.String),
				CreatedAt:  roomCreated.Time,
				UpdatedAt:  roomUpdated.Time,
			}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list bookings", err)
	}
	return out, nil
}

// ---------- guests ----------

func (r *Repo) CreateGuest(ctx context.Context, g domain.Guest) (domain.Guest, error) {
	res, err := r.q.ExecContext(ctx, insertGuestSQL, g.Name, g.RoomID, g.CheckIn, g.CheckOut)
	if err != nil {
		return domain.Guest{}, storageErr("insert guest", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Guest{}, storageErr("guest insert id", err)
	}
	var out domain.Guest
	err = r.q.QueryRowContext(ctx, getGuestSQL, id).Scan(
		&out.ID, &out.Name, &out.RoomID, &out.CheckIn, &out.CheckOut, &out.CreatedAt)
	if err != nil {
		return domain.Guest{}, storageErr("get guest", err)
	}
	return out, nil
}

func (r *Repo) ListGuests(ctx context.Context) ([]domain.GuestView, error) {
	rows, err := r.q.QueryContext(ctx, listGuestsSQL)
	if err != nil {
		return nil, storageErr("list guests", err)
	}
	defer rows.Close()

	var out []domain.GuestView
	for rows.Next() {
		var v domain.GuestView
		var (
			roomID               sql.NullInt64
			roomNumber           sql.NullString
			roomType, roomStatus sql.NullString
			roomPrice            sql.NullFloat64
			roomCreated          sql.NullTime
			roomUpdated          sql.NullTime
		)
		if err := rows.Scan(
			&v.ID, &v.Name, &v.RoomID, &v.CheckIn, &v.CheckOut, &v.CreatedAt,
			&roomID, &roomNumber, &roomType, &roomPrice, &roomStatus,
			&roomCreated, &roomUpdated,
		); err != nil {
			return nil, storageErr("scan guest", err)
		}
		if roomID.Valid {
			v.Room = &domain.Room{
				ID:         roomID.Int64,
				RoomNumber: roomNumber.String,
				Type:       domain.RoomType(roomType.String),
				Price:      roomPrice.Float64,
				Status:     domain.RoomStatus(roomStatus.String),
				CreatedAt:  roomCreated.Time,
				UpdatedAt:  roomUpdated.Time,
			}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list guests", err)
	}
	return out, nil
}

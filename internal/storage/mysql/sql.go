package mysql

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

const roomColumns = `id, room_number, type, price, status, created_at, updated_at`

const insertRoomSQL = `
INSERT INTO rooms (room_number, type, price, status)
VALUES (?, ?, ?, ?)
`

const getRoomSQL = `
SELECT ` + roomColumns + `
FROM rooms
WHERE id = ?
`

const listRoomsSQL = `
SELECT ` + roomColumns + `
FROM rooms
ORDER BY room_number
`

const listRoomsByStatusSQL = `
SELECT ` + roomColumns + `
FROM rooms
WHERE status = ?
ORDER BY room_number
`

const setRoomStatusSQL = `
UPDATE rooms SET status = ? WHERE id = ?
`

// Compare-and-swap: only an available room can be taken. Racing creates on
// the same room serialize here; the loser sees zero rows affected.
const occupyRoomSQL = `
UPDATE rooms SET status = 'occupied' WHERE id = ? AND status = 'available'
`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

const bookingColumns = `id, guest_name, room_id, check_in, check_out, status, total_price, created_at, updated_at`

const insertBookingSQL = `
INSERT INTO bookings (guest_name, room_id, check_in, check_out, status, total_price)
VALUES (?, ?, ?, ?, ?, ?)
`

const getBookingSQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = ?
`

const updateBookingSQL = `
UPDATE bookings
SET guest_name = ?, room_id = ?, check_in = ?, check_out = ?, status = ?, total_price = ?
WHERE id = ?
`

const listBookingsSQL = `
SELECT
  b.id, b.guest_name, b.room_id, b.check_in, b.check_out, b.status, b.total_price,
  b.created_at, b.updated_at,
  r.id, r.room_number, r.type, r.price, r.status, r.created_at, r.updated_at
FROM bookings b
LEFT JOIN rooms r ON r.id = b.room_id
ORDER BY b.created_at DESC, b.id DESC
`

const activeBookingForRoomSQL = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE room_id = ? AND status = 'active'
ORDER BY id
LIMIT 1
`

// -----------------------------------------------------------------------------
// GUESTS
// -----------------------------------------------------------------------------

const insertGuestSQL = `
INSERT INTO guests (name, room_id, check_in, check_out)
VALUES (?, ?, ?, ?)
`

const getGuestSQL = `
SELECT id, name, room_id, check_in, check_out, created_at
FROM guests
WHERE id = ?
`

const listGuestsSQL = `
SELECT
  g.id, g.name, g.room_id, g.check_in, g.check_out, g.created_at,
  r.id, r.room_number, r.type, r.price, r.status, r.created_at, r.updated_at
FROM guests g
LEFT JOIN rooms r ON r.id = g.room_id
ORDER BY g.created_at DESC, g.id DESC
`

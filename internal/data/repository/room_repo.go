package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-management/internal/data/entity"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context, filter entity.RoomFilter) ([]*entity.Room, error)
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) (*entity.Room, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.RoomStatus) (int64, error)
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, room_number, type, size, bed_size, view, price, tax, status,
		       amenities, thumbnail, pictures, videos, max_guests, created_at, updated_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.Type,
		&room.Size,
		&room.BedSize,
		&room.View,
		&room.Price,
		&room.Tax,
		&room.Status,
		&room.Amenities,
		&room.Thumbnail,
		&room.Pictures,
		&room.Videos,
		&room.MaxGuests,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func collectRooms(rows pgx.Rows) ([]*entity.Room, error) {
	defer rows.Close()

	rooms := make([]*entity.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// Create relies on rooms_room_number_key; a duplicate number comes back as
// ROOM_EXISTS without a prior lookup.
func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, room_number, type, size, bed_size, view, price, tax, status,
		                   amenities, thumbnail, pictures, videos, max_guests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.Type,
		room.Size,
		room.BedSize,
		room.View,
		room.Price,
		room.Tax,
		room.Status,
		nonNil(room.Amenities),
		room.Thumbnail,
		nonNil(room.Pictures),
		nonNil(room.Videos),
		room.MaxGuests,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if database.IsUniqueViolation(err, "rooms_room_number_key") {
		return apperror.AlreadyExists(apperror.TypeRoomExists, "Room already exists").Wrap(err)
	}
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("room_number", room.RoomNumber),
		)
		return fmt.Errorf("create room %s: %w", room.RoomNumber, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id, err)
	}

	return room, nil
}

// FindAll applies the catalogue filters, newest first.
func (r *roomRepository) FindAll(ctx context.Context, filter entity.RoomFilter) ([]*entity.Room, error) {
	where, args := buildRoomFilter(filter)

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	rooms, err := collectRooms(rows)
	if err != nil {
		return nil, fmt.Errorf("scan rooms: %w", err)
	}
	return rooms, nil
}

func buildRoomFilter(filter entity.RoomFilter) ([]string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.RoomNumber != "" {
		add("room_number = $%d", filter.RoomNumber)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.Size != nil {
		add("size = $%d", *filter.Size)
	}
	if filter.View != "" {
		add("view ILIKE $%d", "%"+filter.View+"%")
	}
	if filter.StartPrice != nil {
		add("price >= $%d", *filter.StartPrice)
	}
	if filter.EndPrice != nil {
		add("price <= $%d", *filter.EndPrice)
	}
	if len(filter.Amenities) > 0 {
		add("EXISTS (SELECT 1 FROM unnest(amenities) a WHERE a ILIKE ANY($%d))", filter.Amenities)
	}

	return where, args
}

// FindAvailable returns rooms with no reservation of any status touching the
// range. Both bounds are inclusive.
func (r *roomRepository) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms r
		WHERE NOT EXISTS (
			SELECT 1 FROM reservations res
			WHERE res.room_id = r.id
			  AND res.check_in_date <= $2
			  AND res.check_out_date >= $1
		)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, checkIn, checkOut)
	if err != nil {
		r.log.Error("Failed to query available rooms",
			zap.Error(err),
			zap.Time("check_in", checkIn),
			zap.Time("check_out", checkOut),
		)
		return nil, fmt.Errorf("find available rooms: %w", err)
	}

	rooms, err := collectRooms(rows)
	if err != nil {
		return nil, fmt.Errorf("scan available rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET room_number = $2, type = $3, size = $4, bed_size = $5, view = $6, price = $7,
		    tax = $8, status = $9, amenities = $10, thumbnail = $11, pictures = $12,
		    videos = $13, max_guests = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.Type,
		room.Size,
		room.BedSize,
		room.View,
		room.Price,
		room.Tax,
		room.Status,
		nonNil(room.Amenities),
		room.Thumbnail,
		nonNil(room.Pictures),
		nonNil(room.Videos),
		room.MaxGuests,
		room.UpdatedAt,
	)
	if database.IsUniqueViolation(err, "rooms_room_number_key") {
		return apperror.AlreadyExists(apperror.TypeRoomExists, "Room already exists").Wrap(err)
	}
	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", room.ID.String()),
		)
		return fmt.Errorf("update room %s: %w", room.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound(apperror.TypeRoomNotFound, "Room not found")
	}

	return nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) (*entity.Room, error) {
	query := `
		UPDATE rooms SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + roomColumns

	room, err := scanRoom(r.db.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update room status",
			zap.Error(err),
			zap.String("room_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update room status %s: %w", id, err)
	}

	return room, nil
}

// Delete refuses rooms that any reservation still points at, whatever its
// status, so payment history keeps its room.
func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err, "reservations_room_id_fkey") {
		return false, apperror.Conflict(apperror.TypeRoomHasReservations,
			"Room has reservations and cannot be deleted").Wrap(err)
	}
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return false, fmt.Errorf("delete room %s: %w", id, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *roomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return count, nil
}

func (r *roomRepository) CountByStatus(ctx context.Context, status entity.RoomStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count rooms by status %s: %w", status, err)
	}
	return count, nil
}

// nonNil keeps NOT NULL array columns from receiving a SQL NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

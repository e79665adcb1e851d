package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slotbook/internal/domain"
)

const appointmentColumns = `id::text, specialist_id, specialist_name, specialization, category, date, time,
	COALESCE(venue, ''), COALESCE(phone, ''), member_name, is_booked, COALESCE(bulk_id::text, ''),
	created_at, updated_at`

const insertAppointmentQuery = `
	INSERT INTO appointments (id, specialist_id, specialist_name, specialization, category, date, time, venue, phone, member_name, is_booked, bulk_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $13, $13)
`

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID,
		&a.SpecialistID,
		&a.SpecialistName,
		&a.Specialization,
		&a.Category,
		&a.Date,
		&a.Time,
		&a.Venue,
		&a.Phone,
		&a.MemberName,
		&a.IsBooked,
		&a.BulkID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func insertArgs(a *domain.Appointment) []interface{} {
	var bulkID *uuid.UUID
	if a.BulkID != "" {
		id := uuid.MustParse(a.BulkID)
		bulkID = &id
	}

	return []interface{}{
		uuid.MustParse(a.ID),
		a.SpecialistID,
		a.SpecialistName,
		a.Specialization,
		a.Category,
		a.Date,
		a.Time,
		a.Venue,
		a.Phone,
		a.MemberName,
		a.IsBooked,
		bulkID,
		a.CreatedAt,
	}
}

// parseID отсекает идентификаторы, которые не могут существовать в таблице,
// чтобы не получать от Postgres ошибку приведения типа.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	return parsed, err == nil
}

func (r *AppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	if _, err := r.db.Exec(ctx, insertAppointmentQuery, insertArgs(a)...); err != nil {
		return fmt.Errorf("ошибка создания записи: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) CreateBatch(ctx context.Context, appointments []domain.Appointment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i := range appointments {
		batch.Queue(insertAppointmentQuery, insertArgs(&appointments[i])...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("ошибка пакетного создания записей: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1`, appointmentColumns)

	a, err := scanAppointment(r.db.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return a, nil
}

// buildAppointmentQuery собирает SELECT по фильтру с сортировкой по дате и времени.
func buildAppointmentQuery(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	add := func(condition string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(condition, argCount))
		args = append(args, value)
		argCount++
	}

	if filter.SpecialistID != "" {
		add("specialist_id = $%d", filter.SpecialistID)
	}
	if filter.Date != "" {
		add("date = $%d", filter.Date)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.MemberName != "" {
		add("member_name = $%d", filter.MemberName)
	}
	if filter.BulkID != "" {
		add("bulk_id::text = $%d", filter.BulkID)
	}
	if filter.IsBooked != nil {
		add("is_booked = $%d", *filter.IsBooked)
	}

	query := fmt.Sprintf("SELECT %s FROM appointments", appointmentColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, time ASC, created_at ASC"

	return query, args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	query, args := buildAppointmentQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов запроса: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) (*domain.Appointment, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Venue != nil {
		updateFields = append(updateFields, fmt.Sprintf("venue = NULLIF($%d, '')", argCount))
		args = append(args, *dto.Venue)
		argCount++
	}

	if dto.Phone != nil {
		updateFields = append(updateFields, fmt.Sprintf("phone = NULLIF($%d, '')", argCount))
		args = append(args, *dto.Phone)
		argCount++
	}

	if dto.Time != nil {
		updateFields = append(updateFields, fmt.Sprintf("time = $%d", argCount))
		args = append(args, *dto.Time)
		argCount++
	}

	if len(updateFields) == 0 {
		return r.GetByID(ctx, id)
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE appointments SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(updateFields, ", "), argCount, appointmentColumns)

	a, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("ошибка обновления записи: %w", err)
	}

	return a, nil
}

func (r *AppointmentRepo) Book(ctx context.Context, id, memberName string) (*domain.Appointment, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	query := fmt.Sprintf(`
		UPDATE appointments
		SET member_name = $2, is_booked = TRUE, updated_at = $3
		WHERE id = $1 AND is_booked = FALSE
		RETURNING %s
	`, appointmentColumns)

	a, err := scanAppointment(r.db.QueryRow(ctx, query, uid, memberName, time.Now()))
	if err == nil {
		return a, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ошибка бронирования записи: %w", err)
	}

	// Ни одна строка не обновлена: записи нет или она уже занята.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return nil, domain.ErrAlreadyBooked
}

func (r *AppointmentRepo) Delete(ctx context.Context, id string) (*domain.Appointment, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	query := fmt.Sprintf(`DELETE FROM appointments WHERE id = $1 RETURNING %s`, appointmentColumns)

	a, err := scanAppointment(r.db.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("ошибка удаления записи: %w", err)
	}

	return a, nil
}

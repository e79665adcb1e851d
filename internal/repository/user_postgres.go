package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"slotbook/internal/domain"
)

const uniqueViolationCode = "23505"

const userColumns = `id::text, name, email, password_hash, user_type, COALESCE(category, ''),
	COALESCE(specialization, ''), COALESCE(phone, ''), COALESCE(profile_photo, ''), created_at, updated_at`

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.UserType,
		&user.Category,
		&user.Specialization,
		&user.Phone,
		&user.ProfilePhoto,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, user_type, category, specialization, phone, profile_photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		uuid.MustParse(user.ID),
		user.Name,
		user.Email,
		user.PasswordHash,
		user.UserType,
		user.Category,
		user.Specialization,
		user.Phone,
		user.ProfilePhoto,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1)`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя по email: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) (*domain.User, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Name != "" {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, dto.Name)
		argCount++
	}

	if dto.Phone != "" {
		updateFields = append(updateFields, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, dto.Phone)
		argCount++
	}

	if dto.ProfilePhoto != "" {
		updateFields = append(updateFields, fmt.Sprintf("profile_photo = $%d", argCount))
		args = append(args, dto.ProfilePhoto)
		argCount++
	}

	if len(updateFields) == 0 {
		return r.GetByID(ctx, id)
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(updateFields, ", "), argCount, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка обновления пользователя: %w", err)
	}

	return user, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildSpecialistSearch ищет подстроку в имени или специализации без учета регистра.
// Спецсимволы LIKE в запросе экранируются и сопоставляются буквально.
func buildSpecialistSearch(filter domain.SpecialistFilter) (string, []interface{}) {
	conditions := []string{"user_type = 'specialist'"}
	var args []interface{}
	argCount := 1

	if q := strings.TrimSpace(filter.Query); q != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR specialization ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+likeEscaper.Replace(q)+"%")
		argCount++
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, filter.Category)
	}

	query := fmt.Sprintf("SELECT %s FROM users WHERE %s ORDER BY name ASC",
		userColumns, strings.Join(conditions, " AND "))

	return query, args
}

func (r *UserRepo) SearchSpecialists(ctx context.Context, filter domain.SpecialistFilter) ([]domain.User, error) {
	query, args := buildSpecialistSearch(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска специалистов: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования специалиста: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов запроса: %w", err)
	}

	return users, nil
}

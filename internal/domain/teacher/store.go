package teacher

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taqyim/internal/domain/auth"
)

var ErrNotFound = errors.New("teacher not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, scope auth.Scope) ([]Teacher, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, subject, department, email, phone, join_date, birth_date, experience, education, bio, created_at
    FROM teachers
    WHERE ($1 OR id = $2::uuid)
    ORDER BY name
  `, scope.All, nullIfEmpty(scope.TeacherID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []Teacher
	for rows.Next() {
		var t Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Department, &t.Email, &t.Phone, &t.JoinDate, &t.BirthDate, &t.Experience, &t.Education, &t.Bio, &t.CreatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (s *Store) Get(ctx context.Context, scope auth.Scope, id string) (Teacher, error) {
	if !scope.Permits(id) {
		return Teacher{}, ErrNotFound
	}
	var t Teacher
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, subject, department, email, phone, join_date, birth_date, experience, education, bio, created_at
    FROM teachers
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Name, &t.Subject, &t.Department, &t.Email, &t.Phone, &t.JoinDate, &t.BirthDate, &t.Experience, &t.Education, &t.Bio, &t.CreatedAt)
	if err != nil {
		return Teacher{}, ErrNotFound
	}
	return t, nil
}

// CreateWithLogin provisions the login row and the profile row together;
// there is never a profile without a credential record or vice versa.
func (s *Store) CreateWithLogin(ctx context.Context, t Teacher, passwordHash string) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	err = tx.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1,$2,$3)
    RETURNING id
  `, t.Email, passwordHash, auth.RoleTeacher).Scan(&id)
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO teachers (id, name, subject, department, email, phone, join_date, birth_date, experience, education, bio)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
  `, id, t.Name, t.Subject, t.Department, t.Email, t.Phone, t.JoinDate, t.BirthDate, t.Experience, t.Education, t.Bio); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Update never touches the id; the profile keys the login row.
func (s *Store) Update(ctx context.Context, id string, t Teacher) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE teachers
    SET name = $2, subject = $3, department = $4, email = $5, phone = $6,
        join_date = $7, birth_date = $8, experience = $9, education = $10, bio = $11
    WHERE id = $1
  `, id, t.Name, t.Subject, t.Department, t.Email, t.Phone, t.JoinDate, t.BirthDate, t.Experience, t.Education, t.Bio)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the login row; the profile and its evaluations cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1 AND role = $2", id, auth.RoleTeacher)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetByUserID(ctx context.Context, userID string) (Teacher, error) {
	return s.Get(ctx, auth.Scope{All: true}, userID)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

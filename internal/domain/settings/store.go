package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taqyim/internal/domain/evaluation"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListCategories(ctx context.Context) ([]CategorySetting, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT category_id, section, label, weight, active, position
    FROM category_settings
    ORDER BY position, category_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []CategorySetting
	for rows.Next() {
		var c CategorySetting
		if err := rows.Scan(&c.CategoryID, &c.Section, &c.Label, &c.Weight, &c.Active, &c.Position); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ActiveCategories narrows the configuration to the categories the
// evaluation form should render, in configured order.
func (s *Store) ActiveCategories(ctx context.Context) ([]evaluation.Category, error) {
	all, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	var active []evaluation.Category
	for _, c := range all {
		if !c.Active {
			continue
		}
		active = append(active, evaluation.Category{ID: c.CategoryID, Section: c.Section, Label: c.Label})
	}
	return active, nil
}

func (s *Store) UpdateCategories(ctx context.Context, categories []CategorySetting) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, c := range categories {
		if _, err := tx.Exec(ctx, `
      INSERT INTO category_settings (category_id, section, label, weight, active, position)
      VALUES ($1,$2,$3,$4,$5,$6)
      ON CONFLICT (category_id) DO UPDATE
      SET section = EXCLUDED.section, label = EXCLUDED.label,
          weight = EXCLUDED.weight, active = EXCLUDED.active, position = EXCLUDED.position
    `, c.CategoryID, c.Section, c.Label, c.Weight, c.Active, c.Position); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) ListUsers(ctx context.Context) ([]UserRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, email, role, status, last_login, created_at
    FROM users
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		var u UserRecord
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.Status, &u.LastLogin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) SetUserStatus(ctx context.Context, userID, status string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET status = $2 WHERE id = $1", userID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/evaluation"
	"taqyim/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureCategorySettings(ctx, pool); err != nil {
		return err
	}
	if cfg.SeedSupervisorEmail != "" {
		if err := ensureSupervisor(ctx, pool, cfg.SeedSupervisorEmail, cfg.SeedSupervisorPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensureCategorySettings(ctx context.Context, pool *pgxpool.Pool) error {
	for position, cat := range evaluation.SeedCategories() {
		_, err := pool.Exec(ctx, `
      INSERT INTO category_settings (category_id, section, label, weight, active, position)
      VALUES ($1,$2,$3,10,true,$4)
      ON CONFLICT (category_id) DO NOTHING
    `, cat.ID, cat.Section, cat.Label, position)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureSupervisor(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1,$2,$3)
  `, email, hash, auth.RoleSupervisor)
	return err
}

package evaluation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taqyim/internal/domain/auth"
)

var ErrNotFound = errors.New("evaluation not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type ListFilter struct {
	TeacherID     string
	IncludeDrafts bool
}

// Create writes the evaluation header and all score records in one
// transaction; a half-written evaluation is never visible.
func (s *Store) Create(ctx context.Context, e Evaluation) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
    INSERT INTO evaluations (teacher_id, supervisor_id, status, final_notes)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, e.TeacherID, e.SupervisorID, e.Status, e.FinalNotes).Scan(&id, &createdAt)
	if err != nil {
		return "", err
	}

	for section, records := range e.Sections {
		for categoryID, record := range records {
			if _, err := tx.Exec(ctx, `
        INSERT INTO evaluation_scores (evaluation_id, section, category_id, score, notes)
        VALUES ($1,$2,$3,$4,$5)
      `, id, section, categoryID, record.Score, record.Notes); err != nil {
				return "", err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Submit promotes a draft to submitted. Submitted evaluations stay immutable;
// a second submit is ErrNotFound.
func (s *Store) Submit(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluations SET status = $2
    WHERE id = $1 AND status = $3
  `, id, StatusSubmitted, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, scope auth.Scope, id string) (Evaluation, error) {
	e := Evaluation{ID: id}
	err := s.DB.QueryRow(ctx, `
    SELECT teacher_id, supervisor_id, status, final_notes, created_at
    FROM evaluations
    WHERE id = $1
  `, id).Scan(&e.TeacherID, &e.SupervisorID, &e.Status, &e.FinalNotes, &e.CreatedAt)
	if err != nil {
		return Evaluation{}, ErrNotFound
	}
	if !scope.Permits(e.TeacherID) {
		return Evaluation{}, ErrNotFound
	}

	scores, err := s.loadScores(ctx, []string{id})
	if err != nil {
		return Evaluation{}, err
	}
	e.Sections = scores[id]
	return e, nil
}

// List applies the caller's scope inside SQL so a teacher can never fetch
// another teacher's rows no matter what the handler passes in.
func (s *Store) List(ctx context.Context, scope auth.Scope, filter ListFilter) ([]Evaluation, error) {
	query := `
    SELECT id, teacher_id, supervisor_id, status, final_notes, created_at
    FROM evaluations
    WHERE ($1 OR teacher_id = $2::uuid)
      AND ($3::uuid IS NULL OR teacher_id = $3::uuid)
      AND ($4 OR status = $5)
    ORDER BY created_at DESC
  `
	rows, err := s.DB.Query(ctx, query, scope.All, nullIfEmpty(scope.TeacherID), nullIfEmpty(filter.TeacherID), filter.IncludeDrafts, StatusSubmitted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []Evaluation
	var ids []string
	for rows.Next() {
		var e Evaluation
		if err := rows.Scan(&e.ID, &e.TeacherID, &e.SupervisorID, &e.Status, &e.FinalNotes, &e.CreatedAt); err != nil {
			return nil, err
		}
		evals = append(evals, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	scores, err := s.loadScores(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range evals {
		evals[i].Sections = scores[evals[i].ID]
	}
	return evals, nil
}

func (s *Store) loadScores(ctx context.Context, evaluationIDs []string) (map[string]map[Section]map[string]ScoreRecord, error) {
	out := make(map[string]map[Section]map[string]ScoreRecord, len(evaluationIDs))
	if len(evaluationIDs) == 0 {
		return out, nil
	}

	rows, err := s.DB.Query(ctx, `
    SELECT evaluation_id, section, category_id, score, notes
    FROM evaluation_scores
    WHERE evaluation_id = ANY($1)
  `, evaluationIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var evalID, categoryID string
		var section Section
		var record ScoreRecord
		if err := rows.Scan(&evalID, &section, &categoryID, &record.Score, &record.Notes); err != nil {
			return nil, err
		}
		if out[evalID] == nil {
			out[evalID] = make(map[Section]map[string]ScoreRecord, 3)
		}
		if out[evalID][section] == nil {
			out[evalID][section] = make(map[string]ScoreRecord)
		}
		out[evalID][section][categoryID] = record
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

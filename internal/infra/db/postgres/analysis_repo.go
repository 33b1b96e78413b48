package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/bryanwahyu/contentlens/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO content_analyses
  (id, url, content_type, provider, overall_score, result_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  url=EXCLUDED.url,
  content_type=EXCLUDED.content_type,
  provider=EXCLUDED.provider,
  overall_score=EXCLUDED.overall_score,
  result_json=EXCLUDED.result_json;
`
	result, err := json.Marshal(a.Result)
	if err != nil {
		return err
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err = r.db.ExecContext(ctx, q, a.ID, a.URL, a.ContentType, a.Model, a.OverallScore, result, createdAt)
	return err
}

// Get returns one analysis, or nil when the id is unknown
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, url, content_type, result_json, created_at
FROM content_analyses
WHERE id=$1;`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// Latest returns the most recent records, newest first
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const q = `
SELECT id, url, content_type, result_json, created_at
FROM content_analyses
ORDER BY created_at DESC, id DESC
LIMIT $1;`
	return r.queryList(ctx, q, limit)
}

// Paginate returns a page of records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, url, content_type, result_json, created_at
FROM content_analyses
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;`
	return r.queryList(ctx, q, pageSize, offset)
}

func (r *AnalysisRepository) Delete(ctx context.Context, id domain.AnalysisID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM content_analyses WHERE id=$1;`, id)
	return err
}

// Summary aggregates the trailing N days
func (r *AnalysisRepository) Summary(ctx context.Context, days int) (domain.Summary, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	const q = `
SELECT COUNT(*),
       COALESCE(AVG(overall_score), 0),
       COALESCE(SUM(CASE WHEN provider='fallback' THEN 1 ELSE 0 END), 0)
FROM content_analyses
WHERE created_at >= NOW() - make_interval(days => $1);`
	s := domain.Summary{Days: days}
	err := r.db.QueryRowContext(ctx, q, days).Scan(&s.TotalAnalyses, &s.AverageScore, &s.FallbackCount)
	return s, err
}

func (r *AnalysisRepository) queryList(ctx context.Context, q string, args ...any) ([]*domain.Analysis, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var resultJSON []byte
	var created time.Time
	if err := row.Scan(&a.ID, &a.URL, &a.ContentType, &resultJSON, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return nil, err
	}
	a.CreatedAt = created
	return &a, nil
}

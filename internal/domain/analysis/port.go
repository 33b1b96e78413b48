package analysis

import "context"

// Summary aggregates stored analyses over a trailing number of days.
type Summary struct {
	TotalAnalyses int     `json:"total_analyses"`
	AverageScore  float64 `json:"average_score"`
	FallbackCount int     `json:"fallback_count"`
	Days          int     `json:"days"`
}

// Repository persists analysis records. Lookups return (nil, nil) when the
// record does not exist.
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	Latest(ctx context.Context, limit int) ([]*Analysis, error)
	Paginate(ctx context.Context, page, pageSize int) ([]*Analysis, error)
	Delete(ctx context.Context, id AnalysisID) error
	Summary(ctx context.Context, days int) (Summary, error)
}

// ExportStore uploads an exported document and returns its public URL.
type ExportStore interface {
	PutJSON(ctx context.Context, key string, data []byte) (string, error)
}

package analysis

import "time"

type AnalysisID string

// ContentType tells the analyzers what kind of input they are scoring.
type ContentType string

const (
	ContentTypeWebsite  ContentType = "website"
	ContentTypeText     ContentType = "text"
	ContentTypeDocument ContentType = "document"
)

// Analysis is one stored analysis record. Result is embedded so the wire
// format stays flat: id, url, contentType, the framework sections, createdAt.
type Analysis struct {
	ID          AnalysisID  `json:"id"`
	URL         string      `json:"url,omitempty"`
	ContentType ContentType `json:"contentType"`
	Result
	CreatedAt time.Time `json:"createdAt"`
}

package domain

// DefaultTopK is the number of results returned when no limit is given.
const DefaultTopK = 5

// MinCosineScore is the lowest possible cosine similarity.
const MinCosineScore = -1.0

// SearchOptions configures a search query.
type SearchOptions struct {
	// TopK is the maximum number of results. Values <= 0 mean DefaultTopK.
	TopK int

	// MinScore drops results scoring below it. Nil keeps every score.
	MinScore *float64
}

// DefaultSearchOptions returns options that keep every score.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{TopK: DefaultTopK}
}

// WithMinScore returns a copy of o filtering scores below min.
// A min at or below MinCosineScore removes the filter.
func (o SearchOptions) WithMinScore(min float64) SearchOptions {
	if min <= MinCosineScore {
		o.MinScore = nil
		return o
	}
	o.MinScore = &min
	return o
}

// Keeps reports whether score passes the MinScore filter.
func (o SearchOptions) Keeps(score float64) bool {
	return o.MinScore == nil || score >= *o.MinScore
}

// Limit returns the effective result limit.
func (o SearchOptions) Limit() int {
	if o.TopK <= 0 {
		return DefaultTopK
	}
	return o.TopK
}

// SearchResult represents a single ranked chunk.
type SearchResult struct {
	Content    string
	Source     string
	ChunkIndex int

	// Score is the cosine similarity to the query.
	Score float64
}

// SearchStatus tells callers why a response may be empty.
type SearchStatus string

const (
	// SearchOK means the index was scanned.
	SearchOK SearchStatus = "ok"

	// SearchNoIndex means no index has been built yet.
	SearchNoIndex SearchStatus = "no_index"

	// SearchEmbeddingUnavailable means the query could not be embedded.
	SearchEmbeddingUnavailable SearchStatus = "embedding_unavailable"
)

// ScoreSummary aggregates the scores of the returned results.
type ScoreSummary struct {
	Min float64
	Max float64
	Avg float64
}

// SearchResponse is the outcome of one query.
type SearchResponse struct {
	Query   string
	Status  SearchStatus
	Results []SearchResult

	// Scanned is the number of chunks scored.
	Scanned int

	// Scores is zero when Results is empty.
	Scores ScoreSummary
}

// Summarize computes the score summary of results.
func Summarize(results []SearchResult) ScoreSummary {
	if len(results) == 0 {
		return ScoreSummary{}
	}
	s := ScoreSummary{Min: results[0].Score, Max: results[0].Score}
	var total float64
	for _, r := range results {
		if r.Score < s.Min {
			s.Min = r.Score
		}
		if r.Score > s.Max {
			s.Max = r.Score
		}
		total += r.Score
	}
	s.Avg = total / float64(len(results))
	return s
}

package trends

import (
	"context"
	"fmt"
	"slices"
)

// RowSource executes the warehouse query and returns its rows ordered by
// ascending year.
type RowSource interface {
	FetchRows(ctx context.Context) ([]RawRow, error)
}

// RowSourceFunc adapts a plain function to RowSource.
type RowSourceFunc func(ctx context.Context) ([]RawRow, error)

func (f RowSourceFunc) FetchRows(ctx context.Context) ([]RawRow, error) {
	return f(ctx)
}

// Analyze fetches rows from source, groups them by tag and models each tag
// in encounter order. The first failing tag aborts the whole analysis.
func Analyze(ctx context.Context, source RowSource) ([]TrendResult, error) {
	rows, err := source.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tag counts: %w", err)
	}

	set := Aggregate(slices.Values(rows))
	results := make([]TrendResult, 0, set.Len())
	for series := range set.All() {
		result, err := Model(series)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Package warehouse runs the yearly tag-count aggregation against the Stack
// Overflow questions table, either in BigQuery or in a local SQLite mirror.
package warehouse

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// WindowStart is the first year counted.
	WindowStart = 2019
	// WindowEnd is the first year no longer counted.
	WindowEnd = 2024

	// PublicQuestionsTable is the BigQuery public dataset table queried.
	PublicQuestionsTable = "bigquery-public-data.stackoverflow.posts_questions"
)

// AllowedTags are the language tags the service reports on.
var AllowedTags = []string{"python", "javascript", "typescript", "java", "c++", "go", "rust", "sql"}

// Query describes the aggregation: questions created in [StartYear, EndYear)
// carrying any of Tags, counted per (year, tag) and ordered by ascending year.
type Query struct {
	StartYear int
	EndYear   int
	Tags      []string
}

// DefaultQuery returns the fixed five-year, eight-tag window.
func DefaultQuery() Query {
	return Query{
		StartYear: WindowStart,
		EndYear:   WindowEnd,
		Tags:      slices.Clone(AllowedTags),
	}
}

func (q Query) Validate() error {
	if q.EndYear <= q.StartYear {
		return fmt.Errorf("empty year window [%d, %d)", q.StartYear, q.EndYear)
	}
	if len(q.Tags) == 0 {
		return fmt.Errorf("no tags to query")
	}
	return nil
}

// BigQuerySQL renders the standard SQL statement. The window and tags are
// bound as the named parameters @start_year, @end_year and @tags.
func (q Query) BigQuerySQL() string {
	return fmt.Sprintf(`
		SELECT
			EXTRACT(YEAR FROM creation_date) AS year,
			tag,
			COUNT(*) AS post_count
		FROM
			`+"`%s`"+`,
			UNNEST(SPLIT(tags, '|')) AS tag
		WHERE
			EXTRACT(YEAR FROM creation_date) >= @start_year
			AND EXTRACT(YEAR FROM creation_date) < @end_year
			AND tag IN UNNEST(@tags)
		GROUP BY
			year, tag
		ORDER BY
			year ASC, tag ASC`, PublicQuestionsTable)
}

// SQLiteSQL renders the same aggregation for the local mirror. Tags are split
// with a recursive CTE since SQLite has no SPLIT/UNNEST. Positional
// parameters are the start year, the end year and then one per tag.
func (q Query) SQLiteSQL() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.Tags)), ", ")
	return `
		WITH RECURSIVE split(year, tag, rest) AS (
			SELECT
				CAST(strftime('%Y', creation_date) AS INTEGER),
				'',
				tags || '|'
			FROM posts_questions
			WHERE CAST(strftime('%Y', creation_date) AS INTEGER) >= ?
				AND CAST(strftime('%Y', creation_date) AS INTEGER) < ?
			UNION ALL
			SELECT
				year,
				substr(rest, 1, instr(rest, '|') - 1),
				substr(rest, instr(rest, '|') + 1)
			FROM split
			WHERE rest <> ''
		)
		SELECT year, tag, COUNT(*) AS post_count
		FROM split
		WHERE tag IN (` + placeholders + `)
		GROUP BY year, tag
		ORDER BY year ASC, tag ASC`
}

func (q Query) sqliteArgs() []any {
	args := make([]any, 0, len(q.Tags)+2)
	args = append(args, q.StartYear, q.EndYear)
	for _, tag := range q.Tags {
		args = append(args, tag)
	}
	return args
}

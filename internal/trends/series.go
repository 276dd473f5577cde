package trends

import (
	"iter"
	"slices"
)

// RawRow is one (year, tag) aggregate as returned by the warehouse query.
type RawRow struct {
	Year  int
	Tag   string
	Count int
}

// TagSeries holds the yearly question counts for one tag.
// Years[i] corresponds to Counts[i].
type TagSeries struct {
	Tag    string
	Years  []int
	Counts []int
}

// Len returns the number of observed years.
func (s TagSeries) Len() int {
	return len(s.Years)
}

// SeriesSet maps tags to their series and iterates them in the order
// each tag was first encountered.
type SeriesSet struct {
	order  []string
	series map[string]*TagSeries
}

func newSeriesSet() *SeriesSet {
	return &SeriesSet{series: make(map[string]*TagSeries)}
}

// Len returns the number of distinct tags.
func (s *SeriesSet) Len() int {
	return len(s.order)
}

// Tags returns the tags in encounter order.
func (s *SeriesSet) Tags() []string {
	return slices.Clone(s.order)
}

// Get returns the series for tag.
func (s *SeriesSet) Get(tag string) (TagSeries, bool) {
	series, ok := s.series[tag]
	if !ok {
		return TagSeries{}, false
	}
	return *series, true
}

// All yields every series in encounter order.
func (s *SeriesSet) All() iter.Seq[TagSeries] {
	return func(yield func(TagSeries) bool) {
		for _, tag := range s.order {
			if !yield(*s.series[tag]) {
				return
			}
		}
	}
}

func (s *SeriesSet) add(row RawRow) {
	series, ok := s.series[row.Tag]
	if !ok {
		series = &TagSeries{Tag: row.Tag}
		s.series[row.Tag] = series
		s.order = append(s.order, row.Tag)
	}
	series.Years = append(series.Years, row.Year)
	series.Counts = append(series.Counts, row.Count)
}

// Aggregate groups rows by tag. Rows are appended in encounter order and each
// series is then stable-sorted by year, so callers get ascending years even
// when the source does not honor its ordering contract.
func Aggregate(rows iter.Seq[RawRow]) *SeriesSet {
	set := newSeriesSet()
	for row := range rows {
		set.add(row)
	}
	for _, tag := range set.order {
		sortByYear(set.series[tag])
	}
	return set
}

type yearCount struct {
	year  int
	count int
}

func sortByYear(series *TagSeries) {
	if slices.IsSorted(series.Years) {
		return
	}

	pairs := make([]yearCount, len(series.Years))
	for i := range series.Years {
		pairs[i] = yearCount{year: series.Years[i], count: series.Counts[i]}
	}
	slices.SortStableFunc(pairs, func(a, b yearCount) int {
		return a.year - b.year
	})
	for i, p := range pairs {
		series.Years[i] = p.year
		series.Counts[i] = p.count
	}
}

package activity

import (
	"fmt"
	"time"

	"sessiond/internal/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FilesystemJournal implements IJournal using a local bleve index.
type FilesystemJournal struct {
	index bleve.Index
}

// NewFilesystemJournal opens the journal index at the configured directory,
// creating it on first run.
func NewFilesystemJournal(config models.JournalConfiguration) IJournal {
	dir := config.Directory

	index, err := bleve.Open(dir)
	if err != nil {
		index, err = bleve.New(dir, buildIndexMapping())
		if err != nil {
			zap.L().Fatal("Failed to create journal index", zap.Error(err))
		}
	}

	return &FilesystemJournal{index: index}
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	keywordMapping := bleve.NewKeywordFieldMapping()
	dateMapping := bleve.NewDateTimeFieldMapping()
	boolMapping := bleve.NewBooleanFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("action", keywordMapping)
	docMapping.AddFieldMappingsAt("at", dateMapping)
	docMapping.AddFieldMappingsAt("is_authenticated", boolMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

func (j *FilesystemJournal) Record(entry Entry) error {
	if err := j.index.Index(uuid.New().String(), entry); err != nil {
		return fmt.Errorf("failed to index journal entry: %w", err)
	}
	return nil
}

// Search returns the newest matching entries from the last 30 days, capped
// at 100.
func (j *FilesystemJournal) Search(searchCriteria map[string][]string) ([]Entry, error) {
	criteriaQuery := buildBleveQuery(searchCriteria)

	now := time.Now()
	thirtyDaysAgo := now.AddDate(0, 0, -30)
	dateQuery := bleve.NewDateRangeQuery(thirtyDaysAgo, now)
	dateQuery.SetField("at")

	searchRequest := bleve.NewSearchRequest(bleve.NewConjunctionQuery(criteriaQuery, dateQuery))
	searchRequest.Size = 100
	searchRequest.SortBy([]string{"-at"})
	searchRequest.Fields = []string{"*"}

	result, err := j.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search journal: %w", err)
	}

	entries := make([]Entry, 0, len(result.Hits))
	for _, hit := range result.Hits {
		var entry Entry
		entry.Action, _ = hit.Fields["action"].(string)
		entry.IsAuthenticated, _ = hit.Fields["is_authenticated"].(bool)
		if s, ok := hit.Fields["at"].(string); ok {
			if t, parseErr := time.Parse(time.RFC3339, s); parseErr == nil {
				entry.At = t
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (j *FilesystemJournal) CountByDay(
	searchCriteria map[string][]string,
	days int,
) ([]models.TimeSeriesPoint, error) {
	criteriaQuery := buildBleveQuery(searchCriteria)

	now := time.Now()
	startTime := now.AddDate(0, 0, -days)
	dateQuery := bleve.NewDateRangeQuery(startTime, now)
	dateQuery.SetField("at")

	searchRequest := bleve.NewSearchRequest(bleve.NewConjunctionQuery(criteriaQuery, dateQuery))
	searchRequest.Size = 0

	facet := bleve.NewFacetRequest("at", days+1)
	for i := days; i >= 0; i-- {
		dayStart := now.AddDate(0, 0, -i).Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)
		facet.AddDateTimeRange(dayStart.Format("2006-01-02"), dayStart, dayEnd)
	}
	searchRequest.AddFacet("daily_counts", facet)

	result, err := j.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to count journal by day: %w", err)
	}

	dailyFacet, ok := result.Facets["daily_counts"]
	if !ok {
		return []models.TimeSeriesPoint{}, nil
	}

	points := make([]models.TimeSeriesPoint, 0, len(dailyFacet.DateRanges))
	for _, dr := range dailyFacet.DateRanges {
		if dr.Count > 0 {
			points = append(points, models.TimeSeriesPoint{
				Date:  dr.Name,
				Count: int64(dr.Count),
			})
		}
	}

	return points, nil
}

func buildBleveQuery(searchCriteria map[string][]string) query.Query {
	var queries []query.Query

	for key, values := range searchCriteria {
		if len(values) == 1 {
			termQuery := bleve.NewTermQuery(values[0])
			termQuery.SetField(key)
			queries = append(queries, termQuery)
		} else if len(values) > 1 {
			var termQueries []query.Query
			for _, v := range values {
				tq := bleve.NewTermQuery(v)
				tq.SetField(key)
				termQueries = append(termQueries, tq)
			}
			disjunction := bleve.NewDisjunctionQuery(termQueries...)
			disjunction.SetMin(1)
			queries = append(queries, disjunction)
		}
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

func (j *FilesystemJournal) Close() error {
	return j.index.Close()
}

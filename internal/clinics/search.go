package clinics

import (
	"context"
	"encoding/json"

	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/models"
)

// SearchSource reads the clinic index in Elasticsearch.
type SearchSource struct {
	es     *database.ElasticsearchClient
	index  string
	size   int
	logger logger.Logger
}

func NewSearchSource(es *database.ElasticsearchClient, index string, size int, log logger.Logger) *SearchSource {
	if size <= 0 {
		size = 500
	}
	return &SearchSource{
		es:     es,
		index:  index,
		size:   size,
		logger: log.WithFields(map[string]interface{}{"component": "clinic-source", "backend": "elasticsearch"}),
	}
}

func activeClinicsQuery() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"active": false}},
				},
			},
		},
	}
}

func (s *SearchSource) List(ctx context.Context) ([]models.ClinicProfile, error) {
	hits, err := s.es.Search(ctx, s.index, activeClinicsQuery(), s.size)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, err)
	}

	out := make([]models.ClinicProfile, 0, len(hits))
	for _, hit := range hits {
		var profile models.ClinicProfile
		if err := json.Unmarshal(hit, &profile); err != nil {
			s.logger.Warn("skipping unreadable clinic document", map[string]interface{}{"error": err})
			continue
		}
		out = append(out, profile)
	}
	return out, nil
}

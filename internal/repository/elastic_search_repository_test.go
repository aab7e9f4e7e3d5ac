package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	circuitbreaker "github.com/odelour/perfume-shop/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/odelour/perfume-shop/storefront-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture(handler http.Handler) (ElasticSearchProductRepository, *httptest.Server) {
	server := httptest.NewServer(handler)

	conf := &config.Config{}
	conf.ElasticsearchConfig.DBHost = server.URL

	repo := CreateNewElasticSearchRepository(conf, circuitbreaker.CreateCircuitBreaker("elasticsearch-test"))
	return repo, server
}

func TestSearchProducts_BuildsMultiMatchQuery(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	repo, server := newSearchFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"took": 2,
			"hits": {
				"total": {"value": 1, "relation": "eq"},
				"hits": [{"_index": "products", "_id": "abc", "_score": 1.2, "_source": {"id": "abc", "name": "Versace Dylan Blue", "brand": "Versace", "rating": 4.5, "num_reviews": 12}}]
			}
		}`))
	}))
	defer server.Close()

	data, count, err := repo.SearchProducts(context.Background(), "versace", 10)
	require.NoError(t, err)

	assert.Equal(t, "/products/_search", gotPath)
	assert.Equal(t, float64(10), gotBody["size"])

	multiMatch := gotBody["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "versace", multiMatch["query"])

	assert.Equal(t, 1, count)
	require.Len(t, data, 1)
	assert.Equal(t, "Versace Dylan Blue", data[0].Name)
	assert.Equal(t, 4.5, data[0].Rating)
}

func TestSearchProducts_BackendErrorTripsBreaker(t *testing.T) {
	var requests int

	repo, server := newSearchFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	for i := 0; i < 3; i++ {
		_, _, err := repo.SearchProducts(context.Background(), "versace", 10)
		require.ErrorIs(t, err, errs.ErrSearchUnderlying)
	}

	// breaker is open now, the backend stops seeing traffic
	_, _, err := repo.SearchProducts(context.Background(), "versace", 10)
	require.ErrorIs(t, err, errs.ErrSearchUnderlying)
	assert.Equal(t, 3, requests)
}

func TestUpdateProductRating_ScriptUpdate(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	repo, server := newSearchFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"result": "updated"}`))
	}))
	defer server.Close()

	err := repo.UpdateProductRating(context.Background(), dto.RatingUpdate{ProductID: "abc", Rating: 4.3, NumReviews: 3})
	require.NoError(t, err)

	assert.Equal(t, "/products/_update/abc", gotPath)

	script := gotBody["script"].(map[string]interface{})
	params := script["params"].(map[string]interface{})
	assert.Equal(t, 4.3, params["rating"])
	assert.Equal(t, float64(3), params["num_reviews"])
}

func TestUpdateProductRating_NotIndexed(t *testing.T) {
	repo, server := newSearchFixture(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := repo.UpdateProductRating(context.Background(), dto.RatingUpdate{ProductID: "missing", Rating: 4.3, NumReviews: 3})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

package repository

import (
	"context"
	"encoding/json"

	"github.com/odelour/perfume-shop/storefront-service/config"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	pkgdto "github.com/odelour/perfume-shop/storefront-service/pkg/dto"
	"github.com/odelour/perfume-shop/storefront-service/pkg/errs"
	"github.com/odelour/perfume-shop/storefront-service/pkg/httpclient"
	"github.com/sony/gobreaker/v2"
)

type ElasticSearchProductRepositoryImpl struct {
	config *config.Config
	cb     *gobreaker.CircuitBreaker[[]byte]
}

func CreateNewElasticSearchRepository(config *config.Config, cb *gobreaker.CircuitBreaker[[]byte]) ElasticSearchProductRepository {
	return &ElasticSearchProductRepositoryImpl{config: config, cb: cb}
}

func (r *ElasticSearchProductRepositoryImpl) AddProduct(ctx context.Context, index string, data dto.ProductDocument) (err error) {
	requestPayload, err := json.Marshal(data)
	if err != nil {
		return
	}

	statusCode, _, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		Body:   requestPayload,
		URL:    r.config.ElasticsearchConfig.DBHost + "/" + index + "/_doc/" + data.ID,
		Method: "POST",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})

	if err != nil {
		return
	}

	// 201 on first index, 200 when the document is reindexed
	if statusCode != 201 && statusCode != 200 {
		return errs.ErrInternalServer
	}

	return
}

func (r *ElasticSearchProductRepositoryImpl) SearchProducts(ctx context.Context, query string, limit int) (data []dto.ProductDocument, count int, err error) {
	param := make(map[string]interface{})
	var parsedResponseBody pkgdto.ElasticsearchResponse

	param["size"] = limit
	param["query"] = map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":  query,
			"fields": []string{"name", "brand", "short_description"},
		},
	}

	requestPayload, err := json.Marshal(param)
	if err != nil {
		return
	}

	responseBody, err := r.cb.Execute(func() ([]byte, error) {
		statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			Body:   requestPayload,
			URL:    r.config.ElasticsearchConfig.DBHost + "/products/_search",
			Method: "GET",
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
		})
		if err != nil {
			return nil, err
		}

		if statusCode != 200 {
			return nil, errs.ErrSearchUnderlying
		}

		return body, nil
	})
	if err != nil {
		return nil, 0, errs.ErrSearchUnderlying
	}

	err = json.Unmarshal(responseBody, &parsedResponseBody)
	if err != nil {
		return
	}

	for _, productData := range parsedResponseBody.Hits.Hits {
		data = append(data, productData.Source)
	}

	return data, parsedResponseBody.Hits.Total.Value, nil
}

func (r *ElasticSearchProductRepositoryImpl) UpdateProductRating(ctx context.Context, data dto.RatingUpdate) (err error) {
	param := make(map[string]interface{})

	param["script"] = map[string]interface{}{
		"lang":   "painless",
		"source": "ctx._source.rating = params.rating; ctx._source.num_reviews = params.num_reviews",
		"params": map[string]interface{}{
			"rating":      data.Rating,
			"num_reviews": data.NumReviews,
		},
	}

	requestPayload, err := json.Marshal(param)
	if err != nil {
		return
	}

	statusCode, _, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		Body:   requestPayload,
		URL:    r.config.ElasticsearchConfig.DBHost + "/products/_update/" + data.ProductID,
		Method: "POST",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		return
	}

	if statusCode == 404 {
		return errs.ErrNotFound
	} else if statusCode != 200 {
		return errs.ErrInternalServer
	}

	return
}

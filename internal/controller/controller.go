package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/odelour/perfume-shop/storefront-service/internal/dto"
	"github.com/odelour/perfume-shop/storefront-service/internal/service"
	"github.com/odelour/perfume-shop/storefront-service/pkg/errs"
	"github.com/odelour/perfume-shop/storefront-service/pkg/response"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	productService service.ProductService
	reviewService  service.ReviewService
}

func CreateStorefrontController(e *echo.Group, productService service.ProductService, reviewService service.ReviewService) {
	c := Controller{
		productService: productService,
		reviewService:  reviewService,
	}
	e.GET("/products", c.GetProducts)
	e.GET("/products/category/:category", c.GetProductsByCategory)
	e.GET("/products/search/:query", c.SearchProducts)
	e.GET("/products/:id", c.GetProductByID)
	e.GET("/reviews/:productId", c.GetProductReviews)
	e.POST("/reviews", c.AddReview)
}

func (c *Controller) GetProducts(e echo.Context) error {
	data, err := c.productService.GetProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessListResponse(e, len(data), data)
}

func (c *Controller) GetProductsByCategory(e echo.Context) error {
	category := e.Param("category")

	data, err := c.productService.GetProductsByCategory(e.Request().Context(), category)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessListResponse(e, len(data), data)
}

func (c *Controller) SearchProducts(e echo.Context) error {
	query := e.Param("query")

	data, err := c.productService.SearchProducts(e.Request().Context(), query)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessListResponse(e, len(data), data)
}

func (c *Controller) GetProductByID(e echo.Context) error {
	id := e.Param("id")

	data, err := c.productService.GetProductByID(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *Controller) GetProductReviews(e echo.Context) error {
	productID := e.Param("productId")

	data, err := c.reviewService.GetProductReviews(e.Request().Context(), productID)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessListResponse(e, len(data), data)
}

func (c *Controller) AddReview(e echo.Context) error {
	payload := dto.ReviewRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddReview").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	data, err := c.reviewService.AddReview(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteCreatedResponse(e, "Review added successfully", data)
}

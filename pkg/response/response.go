package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/odelour/perfume-shop/storefront-service/pkg/errs"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Success = true
	resp.Message = message
	resp.Data = data

	return c.JSON(http.StatusOK, resp)
}

// WriteSuccessListResponse carries the number of returned records alongside
// the records themselves.
func WriteSuccessListResponse(c echo.Context, count int, data interface{}) error {
	resp := SuccessResponse{}
	resp.Success = true
	resp.Count = &count
	resp.Data = data

	return c.JSON(http.StatusOK, resp)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Success = true
	resp.Message = message
	resp.Data = data

	return c.JSON(http.StatusCreated, resp)
}

func WriteErrorResponse(c echo.Context, err error) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Success = false
	resp.Message = err.Error()

	return c.JSON(statusCode, resp)
}

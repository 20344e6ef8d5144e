package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleSuccess answers 200 with the uniform envelope
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: getRequestID(c),
	})
}

// HandleCreated answers 201 with the uniform envelope
func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: getRequestID(c),
	})
}

// HandleNoContent answers 204
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandlePaginated answers 200 with data plus paging metadata
func HandlePaginated(c *gin.Context, data interface{}, pagination Pagination, message string) {
	c.JSON(http.StatusOK, &PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Message:    message,
		Code:       http.StatusOK,
		RequestID:  getRequestID(c),
	})
}

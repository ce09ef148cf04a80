package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/apperr"
)

// PaginationParams holds pagination-related query parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// ParsePaginationParams parses and validates pagination parameters from the
// request. Non-numeric input is an error; out-of-range values are clamped to
// the default and maximum limits.
func ParsePaginationParams(c *gin.Context, defaultLimit int, maxLimit int) (PaginationParams, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return PaginationParams{}, fmt.Errorf("malformed page parameter: %w", apperr.ErrInvalidArgument)
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		return PaginationParams{}, fmt.Errorf("malformed limit parameter: %w", apperr.ErrInvalidArgument)
	}

	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit // Cap the maximum limit
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}, nil
}

// SendErrorResponse sends a standardized error response
func SendErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

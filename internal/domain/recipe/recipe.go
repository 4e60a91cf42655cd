package recipe

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("recipe not found")

type Recipe struct {
	ID          int64
	OwnerID     string
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Link        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Full payload, used for POST and PUT. Pointers on the numeric fields so a
// supplied zero survives the required check; no range validation beyond that
// (values are passed through as stored).
type CreateRecipeRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Link        string           `json:"link" binding:"omitempty,max=255"`
	Description string           `json:"description"`
}

// Partial payload for PATCH, each field independently optional. There is no
// owner field here at all: ownership is fixed at creation, and a stray
// "user"/"owner" key in the JSON body simply has nowhere to land.
type UpdateRecipeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=255"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Description *string          `json:"description"`
}

// View models per endpoint. Lists carry the summary shape; detail endpoints
// add the description by composition.
type Summary struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
}

type Detail struct {
	Summary
	Description string `json:"description"`
}

func NewSummary(r Recipe) Summary {
	return Summary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

func NewDetail(r Recipe) Detail {
	return Detail{
		Summary:     NewSummary(r),
		Description: r.Description,
	}
}

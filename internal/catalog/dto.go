// AngelaMos | 2026
// dto.go

package catalog

import (
	"math"
	"strconv"
	"time"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

const maxPrice = 9_999_999_999.99

type PackageInput struct {
	Name        string `validate:"required,max=255"`
	Description string `validate:"max=10000"`
	Price       string `validate:"required"`
}

// Validate checks the fields and returns the parsed price.
func (in PackageInput) Validate() (float64, error) {
	if err := core.ValidateStruct(in); err != nil {
		return 0, err
	}

	price, err := strconv.ParseFloat(in.Price, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, core.InvalidInput("price must be a number")
	}
	if price < 0 {
		return 0, core.InvalidInput("price must not be negative")
	}
	if price > maxPrice {
		return 0, core.InvalidInput("price is too large")
	}

	return price, nil
}

type PackageResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImagePath   *string   `json:"image_path"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

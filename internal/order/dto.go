// AngelaMos | 2026
// dto.go

package order

import (
	"strconv"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type CreateOrderInput struct {
	PackageID    string `validate:"required"`
	CustomerName string `validate:"required,max=255"`
	PhoneNumber  string `validate:"required,max=50"`
	Email        string `validate:"required,email,max=255"`
}

// Validate checks the fields and returns the parsed package id.
func (in CreateOrderInput) Validate() (int64, error) {
	if err := core.ValidateStruct(in); err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(in.PackageID, 10, 64)
	if err != nil || id <= 0 {
		return 0, core.InvalidInput("package_id must be a positive integer")
	}

	return id, nil
}

type UpdateOrderInput struct {
	CreateOrderInput
	Status string `validate:"required"`
}

func (in UpdateOrderInput) Validate() (int64, Status, error) {
	packageID, err := in.CreateOrderInput.Validate()
	if err != nil {
		return 0, "", err
	}

	status, err := ParseStatus(in.Status)
	if err != nil {
		return 0, "", err
	}

	return packageID, status, nil
}

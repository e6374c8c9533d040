// AngelaMos | 2026
// status.go

package order

import (
	"fmt"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type Status string

const (
	StatusRequest  Status = "request"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusRequest, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", core.InvalidInput(
			"status must be one of: request, approved, rejected",
		)
	}
}

// Policy is the order state machine. A request may be approved or
// rejected, and writing the current status again is allowed. With
// AllowRollback a decided order may also go back to request.
type Policy struct {
	AllowRollback bool
}

func (p Policy) Check(from, to Status) error {
	switch {
	case from == to:
		return nil
	case from == StatusRequest:
		return nil
	case to == StatusRequest && p.AllowRollback:
		return nil
	}

	return core.ConflictError(
		fmt.Sprintf("cannot change order status from %s to %s", from, to),
	)
}

// AngelaMos | 2026
// entity.go

package order

import (
	"time"
)

type Order struct {
	ID           int64     `db:"id"            json:"id"`
	PackageID    *int64    `db:"package_id"    json:"package_id"`
	PackageName  *string   `db:"package_name"  json:"package_name"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	PhoneNumber  string    `db:"phone_number"  json:"phone_number"`
	Email        string    `db:"email"         json:"email"`
	Status       Status    `db:"status"        json:"status"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}

type StatusCount struct {
	Status Status `db:"status" json:"status"`
	Count  int    `db:"count"  json:"count"`
}

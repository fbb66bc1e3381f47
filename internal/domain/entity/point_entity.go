package entity

import "time"

// Point is the running points balance of one account.
// Exactly one row exists per account, created with the account.
type Point struct {
	ID        int64
	AccountID int64
	AccPoint  int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

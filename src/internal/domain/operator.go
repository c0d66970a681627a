package domain

import "time"

type Operator struct {
	ID         string
	OperatorID string
	FullName   string
	PinHash    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package models

import (
	"errors"
	"strings"
)

type CreateOperatorRequest struct {
	FullName string `json:"fullName"`
	Pin      string `json:"pin"`
}

func (r CreateOperatorRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}

	pin := strings.TrimSpace(r.Pin)
	if len(pin) < 4 || len(pin) > 6 {
		errs = append(errs, "pin must be 4 to 6 digits")
	} else {
		for _, ch := range pin {
			if ch < '0' || ch > '9' {
				errs = append(errs, "pin must be 4 to 6 digits")
				break
			}
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CreateOperatorResponse struct {
	ID         string `json:"id"`
	OperatorID string `json:"operatorId"`
	FullName   string `json:"fullName"`
}

type VerifyPinRequest struct {
	OperatorID string `json:"operatorId"`
	Pin        string `json:"pin"`
}

type VerifyPinResponse struct {
	OperatorID string `json:"operatorId"`
	IsValidPin bool   `json:"isValidPin"`
}

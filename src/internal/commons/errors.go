package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrAccountNotActive = errors.New("account not active: no further transactions")
var ErrDatePrecedesRenewal = errors.New("reference date precedes last renewal date")
var ErrInsufficientPayment = errors.New("insufficient payment")

package models

import (
	"errors"
	"fmt"
)

var (
	ErrStorage          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrValidation       = errors.New("invalid input")
	ErrReferential      = errors.New("the referenced task does not exist")
	ErrTaskInUse        = errors.New("the task is still referenced")
)

var (
	ErrTaskNameEmpty       = fmt.Errorf("%w: the task name must not be empty", ErrValidation)
	ErrProgressOutOfRange  = fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
	ErrBudgetNegative      = fmt.Errorf("%w: the budget must not be negative", ErrValidation)
	ErrDeadlineBeforeStart = fmt.Errorf("%w: the deadline must not be before the start date", ErrValidation)
	ErrQuantityNegative    = fmt.Errorf("%w: the quantity must not be negative", ErrValidation)
	ErrUnitCostNegative    = fmt.Errorf("%w: the unit cost must not be negative", ErrValidation)
	ErrQuantityMissing     = fmt.Errorf("%w: the quantity must be set", ErrValidation)
	ErrUnitCostMissing     = fmt.Errorf("%w: the unit cost must be set", ErrValidation)
	ErrNoLines             = fmt.Errorf("%w: at least one budget line is required", ErrValidation)
	ErrAmountNotPositive   = fmt.Errorf("%w: the amount must be positive", ErrValidation)
	ErrDateMissing         = fmt.Errorf("%w: the transaction date must be set", ErrValidation)
)

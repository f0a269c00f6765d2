package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("client has insufficient balance")
	ErrDepositThreshold    = errors.New("deposit exceeds allowed threshold")
)

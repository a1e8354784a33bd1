package usecase

import "errors"

var (
	ErrInvalidCard        = errors.New("INVALID_CARD")
	ErrOrderPersistFailed = errors.New("ORDER_PERSIST_FAILED")
	ErrOrderNotFound      = errors.New("ORDER_NOT_FOUND")
	ErrRefundNotFound     = errors.New("REFUND_NOT_FOUND")
	ErrRefundExists       = errors.New("REFUND_ALREADY_EXISTS")
	ErrRefundReviewed     = errors.New("REFUND_ALREADY_REVIEWED")
	ErrInvalidTransition  = errors.New("INVALID_STATUS_TRANSITION")
	ErrDuplicateRequest   = errors.New("DUPLICATE_REQUEST")
)

package service

import "errors"

// 业务错误
var (
	ErrNotFound               = errors.New("resource not found")
	ErrForbidden              = errors.New("operation not allowed")
	ErrSlugExists             = errors.New("slug already exists")
	ErrEmailExists            = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidFileType        = errors.New("invalid file type")
	ErrPayloadTooLarge        = errors.New("payload too large")
	ErrImageUploadFailed      = errors.New("image upload failed")
	ErrFileUploadFailed       = errors.New("file upload failed")
	ErrCategoryMismatch       = errors.New("suggested category not found")
	ErrCategoryCreateFailed   = errors.New("category create failed")
	ErrCategoryInUse          = errors.New("category still referenced by products")
	ErrCategoryExists         = errors.New("category already exists")
	ErrOracleUnavailable      = errors.New("category suggestion unavailable")
	ErrOracleResponseInvalid  = errors.New("unexpected category suggestion format")
	ErrRatingInvalid          = errors.New("rating out of range")
	ErrStatusInvalid          = errors.New("invalid product status")
	ErrTitleRequired          = errors.New("title is required")
	ErrPriceInvalid           = errors.New("price invalid")
	ErrPaymentTypeInvalid     = errors.New("payment type invalid")
	ErrStoreExists            = errors.New("store already exists for user")
)

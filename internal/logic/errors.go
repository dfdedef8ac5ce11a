package logic

import (
	"errors"
)

// 错误分类哨兵，handler 层通过 errors.Is 映射到HTTP状态码。
// 所有校验和鉴权失败都在任何写操作之前返回。
var (
	ErrBadRequest   = errors.New("invalid request")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)

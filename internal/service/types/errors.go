// Package types 存放跨服务共享的类型与错误，避免循环导入
package types

import "errors"

var (
	// ErrInvalidArgument 调用方参数错误
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
)

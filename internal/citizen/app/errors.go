package app

import "Rialto/modules/kit/errx"

var (
	// ErrCitizenNotFound 公民不存在。身份查询是快照装配的唯一硬前置。
	ErrCitizenNotFound = errx.NewBiz("CITIZEN_NOT_FOUND", "citizen not found")

	// ErrInvalidShape 形态参数非法，只接受 raw / formatted。
	ErrInvalidShape = errx.NewBiz(errx.CodeBadRequest, "invalid snapshot shape")

	// ErrAssembleAborted 装配中途被取消，结果不完整且不得入缓存。
	ErrAssembleAborted = errx.NewSys(errx.CodeUnavailable, "snapshot assembly aborted")
)

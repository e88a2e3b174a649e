package handler

import (
	"errors"
	"net/http"

	"Rialto/internal/citizen/app"
	"Rialto/internal/shared/transport"
	"Rialto/modules/kit/errx"
)

// toHTTPError 把应用层错误映射为 HTTP 状态码 + 客户端业务码 + 提示语。
// 5xx 一律返回笼统提示，内部细节只进日志。
func toHTTPError(err error) (status int, code transport.BizCode, msg string) {
	switch {
	case errors.Is(err, app.ErrCitizenNotFound):
		return http.StatusNotFound, transport.CitizenNotFound, "citizen not found"
	case errors.Is(err, errx.ErrBadRequest):
		return http.StatusBadRequest, transport.InvalidParam, "invalid request"
	default:
		return http.StatusInternalServerError, transport.SystemError, "internal error"
	}
}

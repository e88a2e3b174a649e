package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端可见业务码。0 表示成功；4xx 段是请求侧问题；5xx 段是服务/依赖问题。
const (
	OK              = 0
	InvalidParam    = 400
	CitizenNotFound = 404
	SystemError     = 500
	UpstreamError   = 502
	Unavailable     = 503
)

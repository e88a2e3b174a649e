package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是跨组件复用的最小日志接口。
//
// 约束：
// - API 保持极简，只承载业务需要的能力：结构化字段 + ctx 透传（trace/span）
// - 不在接口上做级别开关、采样等花活，交给底层 zap 配置
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}

package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"Rialto/internal/citizen/app"
	"Rialto/internal/citizen/domain"
	"Rialto/internal/shared/transport"
	"Rialto/modules/kit/logx"
)

// SnapshotGetter 是 handler 对装配器的最小依赖面。
type SnapshotGetter interface {
	GetSnapshot(ctx context.Context, citizenID string, shape app.Shape, forceRefresh bool) (*domain.Snapshot, error)
}

// Snapshot 暴露快照查询与 websocket 订阅两个端点。
type Snapshot struct {
	svc           SnapshotGetter
	log           logx.Logger
	watchInterval time.Duration
}

func NewSnapshot(svc SnapshotGetter, log logx.Logger, watchInterval time.Duration) *Snapshot {
	if watchInterval <= 0 {
		watchInterval = time.Minute
	}
	return &Snapshot{svc: svc, log: log, watchInterval: watchInterval}
}

func (h *Snapshot) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/api/v1/citizens/:id/snapshot", h.Get)
	g.GET("/api/v1/citizens/:id/snapshot/watch", h.Watch)
}

func (h *Snapshot) Get(c *gin.Context) {
	ctx := c.Request.Context()

	shape, ok := app.ParseShape(c.Query("shape"))
	if !ok {
		err := app.ErrInvalidShape.WithData("shape", c.Query("shape"))
		status, code, _ := toHTTPError(err)
		transport.SetErrorReason(ctx, err.Error())
		c.JSON(status, gin.H{"code": code, "msg": "shape must be raw or formatted"})
		return
	}
	forceRefresh, _ := strconv.ParseBool(c.DefaultQuery("force_refresh", "false"))

	snap, err := h.svc.GetSnapshot(ctx, c.Param("id"), shape, forceRefresh)
	if err != nil {
		status, code, msg := toHTTPError(err)
		transport.SetErrorReason(ctx, err.Error())
		if status >= http.StatusInternalServerError {
			logx.ReportSysError(ctx, h.log, logx.NewSysLog("citizen snapshot tech error", err))
		}
		c.JSON(status, gin.H{"code": code, "msg": msg})
		return
	}

	if shape == app.ShapeFormatted {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.String(http.StatusOK, FormatSnapshot(snap))
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": transport.OK, "data": snap})
}

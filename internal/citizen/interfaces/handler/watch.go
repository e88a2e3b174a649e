package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"Rialto/internal/citizen/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// Watch 把快照按固定间隔推给订阅端。读到的是缓存就推缓存，
// 缓存过期自然触发重建；客户端断开或写失败即结束。
func (h *Snapshot) Watch(c *gin.Context) {
	citizenID := c.Param("id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时已写响应，这里只记录
		return
	}
	h.watchLoop(c.Request.Context(), conn, citizenID)
}

func (h *Snapshot) watchLoop(ctx context.Context, conn *websocket.Conn, citizenID string) {
	defer conn.Close()

	// 读循环只为感知客户端断开
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func() bool {
		snap, err := h.svc.GetSnapshot(ctx, citizenID, app.ShapeRaw, false)
		if err != nil {
			_, _, msg := toHTTPError(err)
			deadline := time.Now().Add(writeWait)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, msg), deadline)
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(snap) == nil
	}

	if !push() {
		return
	}
	ticker := time.NewTicker(h.watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !push() {
				return
			}
		}
	}
}

package interfaces

import (
	"time"

	"github.com/gin-gonic/gin"

	"Rialto/internal/citizen/interfaces/handler"
	"Rialto/modules/kit/logx"
)

type Module struct {
	snapshot *handler.Snapshot
}

func New(svc handler.SnapshotGetter, log logx.Logger, watchInterval time.Duration) *Module {
	return &Module{
		snapshot: handler.NewSnapshot(svc, log, watchInterval),
	}
}

func (m *Module) Register(g *gin.RouterGroup) {
	m.snapshot.RegisterRoutes(g)
}

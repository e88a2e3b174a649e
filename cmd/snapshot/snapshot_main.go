package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"Rialto/internal/citizen/app"
	"Rialto/internal/citizen/infra/mood"
	"Rialto/internal/citizen/infra/persistence/mongodb"
	"Rialto/internal/citizen/infra/recordhttp"
	"Rialto/internal/citizen/infra/worldapi"
	"Rialto/internal/citizen/interfaces"
	mongoinfra "Rialto/internal/shared/infrastructure/mongo"
	"Rialto/internal/shared/logs"
	"Rialto/internal/shared/serverconfig"
	transporthttp "Rialto/internal/shared/transport/http"
	"Rialto/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("snapshot", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))
	log := logx.NewZapLogger(logs.Logger())

	store, cleanup, err := buildRecordStore(serverconfig.Conf)
	if err != nil {
		logs.Fatal("open record store failed", zap.Error(err))
	}
	defer cleanup()

	world := worldapi.New(serverconfig.Conf.WorldAPI)
	svc := app.NewSnapshotService(app.SnapshotServiceDeps{
		Store:     store,
		Geometry:  world,
		Resources: world,
		Positions: world,
		Mood:      mood.New(serverconfig.Conf.Mood),
		Reports:   world,
		Weather:   world,
		Log:       log,
	}, app.SnapshotServiceConfig{
		ParcelTTL:         serverconfig.Conf.Cache.ParcelTTL(),
		StructureTTL:      serverconfig.Conf.Cache.StructureTTL(),
		SnapshotTTL:       serverconfig.Conf.Cache.SnapshotTTL(),
		RelationshipLimit: serverconfig.Conf.Snapshot.Limit(),
	})

	host := serverconfig.Conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, serverconfig.Conf.HTTPServer.Port)
	server := transporthttp.NewHttpServer(addr, nil, log)
	interfaces.New(svc, log, serverconfig.Conf.Snapshot.WatchInterval()).Register(server.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("snapshot http server started", zap.String("addr", addr))
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("snapshot http serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("http server shutdown failed", zap.Error(err))
	}
}

// buildRecordStore 按配置选择记录库后端：外部 HTTP 记录库或自建 mongodb 镜像。
func buildRecordStore(conf serverconfig.Config) (app.RecordStore, func(), error) {
	switch conf.RecordStore.Backend {
	case "mongodb":
		client, err := mongoinfra.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return mongodb.NewRecordStore(client.Database(conf.MongoDB.Database)), cleanup, nil
	default:
		return recordhttp.New(conf.RecordStore), func() {}, nil
	}
}

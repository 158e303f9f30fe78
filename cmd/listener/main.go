package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"Neighbor_Share/internal/config"
	"Neighbor_Share/internal/gateway"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
	"Neighbor_Share/internal/repository/redis"
)

// listener 是独立于 HTTP API 的长驻进程，可单独部署重启
func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	pkg.InitJWT(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("mysql", zap.Error(err))
	}

	rdb, err := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	hub := gateway.NewHub(logger)
	server := gateway.NewServer(hub, mysql.NewNotificationRepository(db), logger)

	subscriber := gateway.NewSubscriber(redis.NewEventBus(rdb), hub, logger)
	go subscriber.Run(context.Background())

	http.HandleFunc("/ws", server.HandleWS)

	logger.Info("listener started", zap.String("addr", cfg.ListenerAddr))
	if err := http.ListenAndServe(cfg.ListenerAddr, nil); err != nil {
		logger.Fatal("listener", zap.Error(err))
	}
}

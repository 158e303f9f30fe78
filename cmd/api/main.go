package main

import (
	"context"
	"log"

	"Neighbor_Share/internal/config"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
	"Neighbor_Share/internal/repository/redis"
	"Neighbor_Share/internal/router"
	"Neighbor_Share/internal/service"
)

func main() {
	cfg := config.Load()

	pkg.InitJWT(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	db, err := mysql.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	// 预订事件经 outbox 投递；没配 kafka 就只打日志
	sender := service.LogSender
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkg.NewBookingEventProducer(pkg.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(mysql.NewOutboxRepository(db), sender)
	go relayer.Run(context.Background())

	r := router.InitRouter(cfg, db, rdb)
	if err := r.Run(cfg.APIAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

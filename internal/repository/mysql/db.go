package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

// Open 打开连接池，句柄由进程入口持有并注入各仓储
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate 自动建表（开发阶段 OK）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Post{},
		&model.PostCommunity{},
		&model.Request{},
		&model.Booking{},
		&model.Notification{},
		&model.Message{},
		&model.BookingOutbox{},
	)
}

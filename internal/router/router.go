package router

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"Neighbor_Share/internal/config"
	"Neighbor_Share/internal/handler"
	"Neighbor_Share/internal/middleware"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
	"Neighbor_Share/internal/repository/redis"
	"Neighbor_Share/internal/service"
)

// InitRouter 进程入口持有 db/redis 句柄并注入到底，new 出整棵依赖树
func InitRouter(cfg *config.Config, db *gorm.DB, rdb *goredis.Client) *gin.Engine {
	r := gin.Default()

	userRepo := mysql.NewUserRepository(db)
	communityRepo := mysql.NewCommunityRepository(db)
	memberRepo := mysql.NewCommunityMemberRepository(db)
	postRepo := mysql.NewPostRepository(db)
	requestRepo := mysql.NewRequestRepository(db)
	bookingRepo := mysql.NewBookingRepository(db)
	notificationRepo := mysql.NewNotificationRepository(db)
	messageRepo := mysql.NewMessageRepository(db)

	counterRepo := redis.NewCounterRepository(rdb)
	resetRepo := redis.NewResetCodeRepository(rdb)
	bus := redis.NewEventBus(rdb)

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}

	user := handler.NewUserHandler(service.NewUserService(userRepo, resetRepo, smtp, cfg.AdminIDs), cfg.CookieDomain)
	community := handler.NewCommunityHandler(service.NewCommunityService(communityRepo, memberRepo))
	post := handler.NewPostHandler(service.NewPostService(postRepo, requestRepo, memberRepo))
	request := handler.NewRequestHandler(service.NewRequestService(requestRepo, memberRepo))
	booking := handler.NewBookingHandler(service.NewBookingService(bookingRepo, postRepo, memberRepo, notificationRepo, counterRepo))
	notification := handler.NewNotificationHandler(service.NewNotificationService(notificationRepo, memberRepo, memberRepo, counterRepo))
	message := handler.NewMessageHandler(service.NewMessageService(messageRepo, notificationRepo, counterRepo, bus))

	auth := middleware.AuthMiddleware()
	member := middleware.MemberMiddleware(memberRepo)
	postOwner := middleware.PostOwnerMiddleware(postRepo)
	admin := middleware.AdminMiddleware(cfg.AdminIDs)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", user.Register)
		authGroup.POST("/login", user.Login)
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/refresh", user.TokenRefresh)
		authGroup.GET("/session", auth, user.Session)
		authGroup.POST("/reset/code", user.SendResetCode)
		authGroup.POST("/reset", user.ResetPassword)
		authGroup.GET("/unsubscribe", user.Unsubscribe)
	}

	communityGroup := r.Group("/api/community")
	communityGroup.Use(auth)
	{
		communityGroup.POST("/create", community.Create)
		communityGroup.POST("/join", community.Join)
		communityGroup.POST("/leave/:community_id", community.Leave)
		communityGroup.GET("/list", community.List)
	}

	postGroup := r.Group("/api/post")
	postGroup.Use(auth)
	{
		postGroup.POST("/create", post.Create)
		postGroup.GET("/list/:community_id", member, post.ListByCommunity)
		postGroup.DELETE("/:id", postOwner, post.Delete)
	}

	requestGroup := r.Group("/api/request")
	requestGroup.Use(auth)
	{
		requestGroup.POST("/create", request.Create)
		requestGroup.GET("/list/:community_id", member, request.ListByCommunity)
	}

	bookingGroup := r.Group("/api/booking")
	bookingGroup.Use(auth)
	{
		bookingGroup.POST("/create", booking.Create)
		bookingGroup.PUT("/:id", booking.UpdateStatus)
	}

	notificationGroup := r.Group("/api/notification")
	notificationGroup.Use(auth)
	{
		notificationGroup.GET("/list", member, notification.List)
		notificationGroup.GET("/unread", notification.Unread)
		notificationGroup.GET("/:id", notification.Get)
		notificationGroup.POST("/chat", notification.StartChat)
	}

	messageGroup := r.Group("/api/message")
	messageGroup.Use(auth)
	{
		messageGroup.POST("/create", message.Create)
		messageGroup.GET("/list/:notification_id", message.ListByNotification)
	}

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth, admin)
	{
		adminGroup.DELETE("/community/:community_id", community.Delete)
	}

	return r
}

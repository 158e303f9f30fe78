package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
	"Neighbor_Share/internal/repository/redis"
)

type UserService struct {
	repo       *mysql.UserRepository
	resetCodes *redis.ResetCodeRepository
	smtp       pkg.SMTPConfig
	adminIDs   []uint64
}

func NewUserService(repo *mysql.UserRepository, resetCodes *redis.ResetCodeRepository, smtp pkg.SMTPConfig, adminIDs []uint64) *UserService {
	return &UserService{
		repo:       repo,
		resetCodes: resetCodes,
		smtp:       smtp,
		adminIDs:   adminIDs,
	}
}

func (s *UserService) isAdmin(userID uint64) bool {
	for _, id := range s.adminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (s *UserService) Register(username, password, email string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:         username,
		Email:            email,
		Password:         string(hash),
		IsNotified:       true,
		UnsubscribeToken: uuid.NewString(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户名或邮箱均可；两类失败不区分提示
func (s *UserService) Login(username, password string) (*pkg.Pair, *model.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, nil, pkg.NewUnauthorized(pkg.CodeInvalidCredentials, "invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, pkg.NewUnauthorized(pkg.CodeInvalidCredentials, "invalid credentials")
	}

	pair, err := pkg.GeneratePair(user.ID, user.Email, s.isAdmin(user.ID))
	if err != nil {
		return nil, nil, err
	}
	if err := s.repo.UpdateLastLogin(user.ID); err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh 凭有效 refresh 重发两枚 cookie 并刷新最近登录时间。
// 没有服务端吊销表，过期是唯一失效机制。
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	claims, err := pkg.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrRefreshExpired) {
			return nil, pkg.NewUnauthorized(pkg.CodeRefreshExpired, "refresh token expired")
		}
		return nil, pkg.NewUnauthorized(pkg.CodeRefreshInvalid, "invalid refresh token")
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		return nil, pkg.NewUnauthorized(pkg.CodeRefreshInvalid, "invalid refresh token")
	}

	pair, err := pkg.GeneratePair(user.ID, user.Email, s.isAdmin(user.ID))
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) FindByID(id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// SendResetCode 生成一次性重置码存入 redis 并发邮件。
// 为避免枚举邮箱，未注册邮箱也返回成功。
func (s *UserService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := pkg.RandHex(16)
	if err != nil {
		return err
	}
	if err := s.resetCodes.Save(ctx, code, user.ID, redis.DefaultResetCodeTTL); err != nil {
		return err
	}

	html := pkg.ResetCodeHTML(code, redis.DefaultResetCodeTTL)
	return pkg.SendEmail(s.smtp, email, "Password reset", html)
}

func (s *UserService) ResetPassword(ctx context.Context, code, newPassword string) error {
	userID, err := s.resetCodes.Consume(ctx, code)
	if err != nil {
		if errors.Is(err, redis.ErrResetCodeNotFound) {
			return pkg.NewNotFound("reset code not found or expired")
		}
		return err
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

// Unsubscribe 邮件退订链接，token 随注册生成
func (s *UserService) Unsubscribe(token string) error {
	user, err := s.repo.FindByUnsubscribeToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NewNotFound("unknown unsubscribe token")
		}
		return err
	}
	return s.repo.SetNotified(user.ID, false)
}

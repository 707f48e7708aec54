package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakubCF/Boutique/internal/model"
)

// ==================== 接口定义 ====================

// SettingRepository 配置仓储接口
type SettingRepository interface {
	List(ctx context.Context) ([]model.Setting, error)
	// Map 以 key -> value 映射返回全部配置
	Map(ctx context.Context) (map[string]string, error)
	// Upsert 存在则更新，不存在则创建
	Upsert(ctx context.Context, key, value string) error
	// SeedDefaults 幂等播种默认配置：已存在的 key 绝不覆盖
	// 每次进程启动都会执行一遍
	SeedDefaults(ctx context.Context, defaults map[string]string) error
}

// ==================== 仓储实现 ====================

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepository 创建配置仓储
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) List(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&settings).Error
	return settings, err
}

func (r *settingRepo) Map(ctx context.Context) (map[string]string, error) {
	settings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(settings))
	for _, s := range settings {
		m[s.Key] = s.Value
	}
	return m, nil
}

func (r *settingRepo) Upsert(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model.Setting{Key: key, Value: value}).Error
}

func (r *settingRepo) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	for key, value := range defaults {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoNothing: true,
			}).
			Create(&model.Setting{Key: key, Value: value}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

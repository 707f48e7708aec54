package service

import (
	"context"

	"github.com/jakubCF/Boutique/internal/api/dto"
	"github.com/jakubCF/Boutique/internal/model"
	"github.com/jakubCF/Boutique/internal/repository"
)

// ==================== SettingService 配置服务 ====================

type SettingService struct {
	settingRepo repository.SettingRepository
}

// NewSettingService 创建配置服务
func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

func (s *SettingService) GetSettings(ctx context.Context) ([]model.Setting, error) {
	return s.settingRepo.List(ctx)
}

// UpdateSettings 批量保存：存在则更新，不存在则创建，返回保存后的全量配置
func (s *SettingService) UpdateSettings(ctx context.Context, updates []dto.SettingUpdate) ([]model.Setting, error) {
	for _, u := range updates {
		if err := s.settingRepo.Upsert(ctx, u.Key, u.Value); err != nil {
			return nil, err
		}
	}
	return s.settingRepo.List(ctx)
}

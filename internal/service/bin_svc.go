package service

import (
	"context"
	"fmt"

	"github.com/jakubCF/Boutique/internal/api/dto"
	"github.com/jakubCF/Boutique/internal/model"
	"github.com/jakubCF/Boutique/internal/repository"
)

// binFieldTypes 收纳箱 PATCH 白名单
var binFieldTypes = map[string]string{
	"name":    "string",
	"is_full": "boolean",
}

// ==================== BinService 收纳箱服务 ====================

type BinService struct {
	binRepo  repository.BinRepository
	itemRepo repository.ItemRepository
}

// NewBinService 创建收纳箱服务
func NewBinService(binRepo repository.BinRepository, itemRepo repository.ItemRepository) *BinService {
	return &BinService{binRepo: binRepo, itemRepo: itemRepo}
}

func (s *BinService) GetBins(ctx context.Context) ([]model.Bin, error) {
	return s.binRepo.List(ctx)
}

func (s *BinService) GetBin(ctx context.Context, id int64) (*model.Bin, error) {
	return s.binRepo.GetByID(ctx, id)
}

func (s *BinService) CreateBin(ctx context.Context, name string) (*model.Bin, error) {
	bin := &model.Bin{Name: name}
	if err := s.binRepo.Create(ctx, bin); err != nil {
		return nil, err
	}
	return s.binRepo.GetByID(ctx, bin.ID)
}

func (s *BinService) UpdateBinName(ctx context.Context, id int64, name string) (*model.Bin, error) {
	if err := s.binRepo.UpdateFields(ctx, id, map[string]interface{}{"name": name}); err != nil {
		return nil, err
	}
	return s.binRepo.GetByID(ctx, id)
}

// UpdateBinIsFull 标记装满状态，沿用前端 1/0 约定
func (s *BinService) UpdateBinIsFull(ctx context.Context, id int64, isFull int) (*model.Bin, error) {
	if err := s.binRepo.UpdateFields(ctx, id, map[string]interface{}{"is_full": isFull == 1}); err != nil {
		return nil, err
	}
	return s.binRepo.GetByID(ctx, id)
}

// UpdateBinFields 按白名单批量更新
func (s *BinService) UpdateBinFields(ctx context.Context, id int64, updates []dto.FieldUpdate) (*model.Bin, error) {
	fields := make(map[string]interface{}, len(updates))
	for _, u := range updates {
		typ, ok := binFieldTypes[u.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidField, u.Field)
		}
		v, err := coerceFieldValue(typ, u.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Field, err)
		}
		fields[u.Field] = v
	}

	if err := s.binRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.binRepo.GetByID(ctx, id)
}

func (s *BinService) DeleteBin(ctx context.Context, id int64) error {
	return s.binRepo.Delete(ctx, id)
}

// AddItem 把商品放进箱子；商品换箱时直接指过来即可，旧箱自动脱钩
func (s *BinService) AddItem(ctx context.Context, binID, itemID int64) (*model.Bin, error) {
	if err := s.itemRepo.UpdateFields(ctx, itemID, map[string]interface{}{"bin_id": binID}); err != nil {
		return nil, err
	}
	return s.binRepo.GetByID(ctx, binID)
}

// RemoveItem 把商品从箱子里拿出来（不放进别的箱子时才调这个）
func (s *BinService) RemoveItem(ctx context.Context, binID, itemID int64) (*model.Bin, error) {
	if err := s.itemRepo.UpdateFields(ctx, itemID, map[string]interface{}{"bin_id": nil}); err != nil {
		return nil, err
	}
	return s.binRepo.GetByID(ctx, binID)
}

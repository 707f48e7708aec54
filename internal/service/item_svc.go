package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jakubCF/Boutique/internal/api/dto"
	"github.com/jakubCF/Boutique/internal/model"
	"github.com/jakubCF/Boutique/internal/repository"
)

// ==================== 字段白名单 ====================

// itemFieldTypes PATCH 可改字段及其声明类型
// 不在名单里的字段一律拒绝，防止前端改到 id 之类的内部字段
var itemFieldTypes = map[string]string{
	"name":                       "string",
	"bin_id":                     "number",
	"sold":                       "boolean",
	"web_url":                    "string",
	"buy_price":                  "number",
	"listing_price":              "number",
	"item_desc":                  "string",
	"purchase_date":              "date",
	"sold_date":                  "date",
	"brand":                      "string",
	"made_in":                    "string",
	"posh_category":              "string",
	"posh_picture_url":           "string",
	"posh_created_at":            "date",
	"posh_size":                  "string",
	"posh_root_ancestor_post_id": "string",
}

var (
	ErrInvalidField = errors.New("invalid field")
	ErrInvalidValue = errors.New("invalid value")
)

// ==================== ItemService 商品服务 ====================

type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService 创建商品服务
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// GetItems 全部商品，挂牌时间倒序
func (s *ItemService) GetItems(ctx context.Context) ([]model.Item, error) {
	return s.itemRepo.List(ctx)
}

func (s *ItemService) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// CreateItem 手动建商品只给名字，其余字段留空由后续编辑补齐
func (s *ItemService) CreateItem(ctx context.Context, name string) (*model.Item, error) {
	item := &model.Item{Name: name}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, item.ID)
}

// UpdateItemFields 按白名单校验并转换后批量更新字段
func (s *ItemService) UpdateItemFields(ctx context.Context, id int64, updates []dto.FieldUpdate) (*model.Item, error) {
	fields := make(map[string]interface{}, len(updates))
	for _, u := range updates {
		typ, ok := itemFieldTypes[u.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidField, u.Field)
		}
		v, err := coerceFieldValue(typ, u.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Field, err)
		}
		fields[u.Field] = v
	}

	if err := s.itemRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.itemRepo.GetByID(ctx, id)
}

func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	return s.itemRepo.Delete(ctx, id)
}

// ==================== 值转换 ====================

// coerceFieldValue 按声明类型校验 JSON 值
// null 一律放行（清空字段）
func coerceFieldValue(typ string, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch typ {
	case "string":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string", ErrInvalidValue)
		}
		return s, nil
	case "number":
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: expected number", ErrInvalidValue)
		}
		return f, nil
	case "boolean":
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expected boolean", ErrInvalidValue)
		}
		return b, nil
	case "date":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected date string", ErrInvalidValue)
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%w: unparsable date %q", ErrInvalidValue, s)
	default:
		return nil, fmt.Errorf("%w: unknown type %s", ErrInvalidValue, typ)
	}
}

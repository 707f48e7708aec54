package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakubCF/Boutique/internal/model"
)

// ==================== 接口定义 ====================

// ItemRepository 商品仓储接口
type ItemRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// 抓取同步专用
	// FindByIdentity 一次批量查询：web_url 命中 或 根 ID 命中的全部商品
	FindByIdentity(ctx context.Context, webURLs, rootIDs []string) ([]model.Item, error)
	// BulkInsert 批量插入，唯一键冲突的行跳过不报错，返回实际插入行数
	BulkInsert(ctx context.Context, items []model.Item) (int64, error)
	// UpdateByRootID 按根 ID 过滤更新（而不是按单条主键），同根的行全部更新
	UpdateByRootID(ctx context.Context, rootID string, fields map[string]interface{}) (int64, error)
}

// ==================== 仓储实现 ====================

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓储
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Preload("Bin").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Preload("Bin").
		Order("posh_created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, id).Error
}

func (r *itemRepo) FindByIdentity(ctx context.Context, webURLs, rootIDs []string) ([]model.Item, error) {
	if len(webURLs) == 0 && len(rootIDs) == 0 {
		return nil, nil
	}

	cond := r.db.Where("web_url IN ?", webURLs)
	if len(rootIDs) > 0 {
		cond = cond.Or("posh_root_ancestor_post_id IN ?", rootIDs)
	}

	var items []model.Item
	err := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where(cond).
		Find(&items).Error
	return items, err
}

func (r *itemRepo) BulkInsert(ctx context.Context, items []model.Item) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	// 并发的两个周期可能抢插同一个 web_url，冲突行直接跳过
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&items)
	return tx.RowsAffected, tx.Error
}

func (r *itemRepo) UpdateByRootID(ctx context.Context, rootID string, fields map[string]interface{}) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("posh_root_ancestor_post_id = ?", rootID).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

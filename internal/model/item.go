package model

import (
	"time"

	"gorm.io/datatypes"
)

// Item 库存商品
// 字段分两类：
//   - 本地运营字段（bin_id, sold, buy_price, item_desc, purchase_date, sold_date, made_in）
//     只由手动 CRUD 路径维护，抓取同步绝不触碰
//   - Poshmark 同步字段（web_url, listing_price, posh_* 等）由抓取同步写入
type Item struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`

	// --- 本地运营字段 ---
	BinID        *int64          `gorm:"index" json:"bin_id"`
	Bin          *Bin            `gorm:"foreignKey:BinID" json:"bin,omitempty"`
	Sold         bool            `gorm:"default:false" json:"sold"`
	BuyPrice     *float64        `json:"buy_price"`
	ItemDesc     *string         `gorm:"type:text" json:"item_desc"`
	PurchaseDate *datatypes.Date `json:"purchase_date"`
	SoldDate     *datatypes.Date `json:"sold_date"`
	MadeIn       *string         `gorm:"size:255" json:"made_in"`

	// --- Poshmark 身份字段 ---
	// WebURL 当前挂牌页地址，全表唯一；手动建的商品可以没有
	WebURL *string `gorm:"size:512;uniqueIndex" json:"web_url"`
	// PoshRootAncestorPostID 首次挂牌的根 ID，重新上架（relist）后保持不变
	// 是 relist 识别的兜底键
	PoshRootAncestorPostID *string `gorm:"size:64;index" json:"posh_root_ancestor_post_id"`

	// --- Poshmark 内容字段 ---
	ListingPrice   *float64   `json:"listing_price"`
	Brand          *string    `gorm:"size:255" json:"brand"`
	PoshCategory   *string    `gorm:"size:255" json:"posh_category"`
	PoshPictureURL *string    `gorm:"size:1024" json:"posh_picture_url"`
	PoshCreatedAt  *time.Time `gorm:"index" json:"posh_created_at"`
	PoshSize       *string    `gorm:"size:100" json:"posh_size"`
	PoshUser       *string    `gorm:"size:100" json:"-"`

	// Sysdate 抓取入库时间
	Sysdate *time.Time `json:"-"`
}

func (Item) TableName() string {
	return "items"
}

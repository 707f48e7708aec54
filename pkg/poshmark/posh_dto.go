package poshmark

import (
	"bytes"
	"strconv"
	"time"
)

// ==================== 响应 DTO ====================

// RawListing 闭橱列表接口返回的单条挂牌原始数据
// 只声明同步需要的字段，其余字段忽略
type RawListing struct {
	// ID 当前挂牌页的 ID，卖家重新上架后会变
	ID    string `json:"id"`
	Title string `json:"title"`

	Size       string `json:"size"`
	Brand      string `json:"brand"`
	Category   string `json:"category"`
	PictureURL string `json:"picture_url"`

	// Price 可能是数字也可能是字符串，解析失败按缺失处理
	Price FlexFloat `json:"price"`

	// CreatedAt 当前挂牌实例的创建时间（RFC3339 字符串）
	CreatedAt string `json:"created_at"`

	// RootAncestorPostID 首次挂牌的根 ID，relist 后不变；可能为空
	RootAncestorPostID string `json:"root_ancestor_post_id"`

	// PoshUser 卖家账号，部分接口版本不返回
	PoshUser string `json:"posh_user"`
}

// ==================== 容错字段类型 ====================

// FlexFloat 容错的数值字段：数字、数字字符串都接受，
// 其他情况按缺失处理，绝不让一条挂牌因为价格格式挂掉整页解析
type FlexFloat struct {
	Val *float64
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	f.Val = nil

	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Val = &v
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if f.Val == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(*f.Val, 'f', -1, 64)), nil
}

// ParseListingTime 解析挂牌时间戳
// 解析不了返回 nil，挂牌本身照常保留
func ParseListingTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

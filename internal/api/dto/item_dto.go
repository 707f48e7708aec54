package dto

// ==================== 请求 DTO ====================

// CreateItemReq 手动创建商品，只收名字，其余字段后续 PATCH 补
type CreateItemReq struct {
	Name string `json:"name" binding:"required,max=255"`
}

// FieldUpdate 单个字段更新
// Value 不声明类型，按字段白名单里的声明类型做校验和转换
type FieldUpdate struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// UpdateItemFieldsReq 按字段白名单批量更新
type UpdateItemFieldsReq struct {
	Updates []FieldUpdate `json:"updates" binding:"required,min=1,dive"`
}

package dto

// ==================== 请求 DTO ====================

// CreateBinReq 创建收纳箱
type CreateBinReq struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateBinNameReq 重命名收纳箱
type UpdateBinNameReq struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateBinIsFullReq 标记装满状态，沿用前端的 1/0 约定
type UpdateBinIsFullReq struct {
	IsFull *int `json:"is_full" binding:"required,oneof=0 1"`
}

// UpdateBinFieldsReq 按字段白名单批量更新
type UpdateBinFieldsReq struct {
	Updates []FieldUpdate `json:"updates" binding:"required,min=1,dive"`
}

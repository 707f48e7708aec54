package dto

// ==================== 请求 DTO ====================

// SettingUpdate 单条配置，key 不存在则新建
type SettingUpdate struct {
	ID    int64  `json:"id"`
	Key   string `json:"key" binding:"required,max=100"`
	Value string `json:"value"`
}

// UpdateSettingsReq 批量保存配置
type UpdateSettingsReq struct {
	Settings []SettingUpdate `json:"settings" binding:"required,min=1,dive"`
}

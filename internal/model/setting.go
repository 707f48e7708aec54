package model

// Setting 键值配置表
// 抓取相关配置（posh_url / posh_user / scrape_interval）都存在这里，
// 每个抓取周期前重新读取，改动下个周期生效
type Setting struct {
	ID    int64  `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"size:500" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

package model

// Bin 收纳箱，商品按箱归置
type Bin struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	IsFull bool   `gorm:"default:false" json:"is_full"`

	Items []Item `gorm:"foreignKey:BinID" json:"items"`
}

func (Bin) TableName() string {
	return "bins"
}

package model

import (
	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
)

// Member 會員主檔
// ID 0 保留給walk-in一般客戶，不放在資料庫裡
type Member struct {
	MemberID uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null;type:varchar(100)"`
	Phone    string `gorm:"type:varchar(50)"`
	Note     string `gorm:"type:text"`
	BaseModel
}

func (m *Member) ToDomain() domain.Member {
	return domain.Member{MemberID: m.MemberID, Name: m.Name}
}

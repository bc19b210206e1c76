package models

import (
	"time"

	"gorm.io/gorm"
)

// Factor types: whether answers tagged with this factor feed the
// turnover-prediction pipeline downstream.
const (
	FactorTurnover    = "TURNOVER"
	FactorNonTurnover = "NON_TURNOVER"
)

type Factor struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Type        string    `gorm:"column:type;size:20;not null;default:'NON_TURNOVER'" json:"type"`
	CreatedByID *uint     `gorm:"column:created_by_id" json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Questions []Question `gorm:"foreignKey:FactorID" json:"-"`
}

func (Factor) TableName() string {
	return "factors"
}

// BeforeDelete detaches questions instead of deleting them: a factor is a
// classification tag, not an owner.
func (f *Factor) BeforeDelete(tx *gorm.DB) error {
	return tx.Model(&Question{}).
		Where("factor_id = ?", f.ID).
		Update("factor_id", nil).Error
}

func ValidFactorType(t string) bool {
	return t == FactorTurnover || t == FactorNonTurnover
}

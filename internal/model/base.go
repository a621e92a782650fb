package model

import (
	"time"
)

// BaseEntity carries audit columns. GORM fills CreatedAt/UpdatedAt (also on
// bulk updates); CreatedBy is the operator account that wrote the row.
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	CreatedBy *int64    `gorm:"column:created_by"`
	UpdatedBy *int64    `gorm:"column:updated_by"`
}

// CreatedByAccount records the operator creating the row
func (b *BaseEntity) CreatedByAccount(accountID uint32) {
	id := int64(accountID)
	b.CreatedBy = &id
	b.UpdatedBy = &id
}

package models

import "time"

// Record is implemented by every row type the API can insert.
type Record interface {
	PrimaryKey() int64
}

type Category struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Category     string     `json:"category" gorm:"type:varchar(255)"`
	CategoryLink string     `json:"category_link" gorm:"type:varchar(255)"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Campaigns    []Campaign `json:"campaigns,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (Category) TableName() string { return "categories" }

func (c Category) PrimaryKey() int64 { return c.ID }

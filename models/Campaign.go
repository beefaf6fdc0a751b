package models

import "time"

type Campaign struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"type:varchar(255)"`
	Creator    string    `json:"creator" gorm:"type:varchar(255)"`
	Location   string    `json:"location" gorm:"type:varchar(255)"`
	CategoryID int64     `json:"category_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Campaign) TableName() string { return "campaigns" }

func (c Campaign) PrimaryKey() int64 { return c.ID }

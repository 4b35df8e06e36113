package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Code         string         `json:"code" gorm:"not null;uniqueIndex"` // "CSC101"
	Title        string         `json:"title" gorm:"not null"`
	DepartmentID uint           `json:"department_id" gorm:"not null;index"`
	Department   Department     `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Level        int            `json:"level" gorm:"not null"` // 100, 200, ...
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

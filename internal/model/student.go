package model

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	MatricNumber string         `json:"matric_number" gorm:"not null;uniqueIndex"`
	FirstName    string         `json:"first_name" gorm:"not null"`
	LastName     string         `json:"last_name" gorm:"not null"`
	DepartmentID uint           `json:"department_id" gorm:"not null;index"`
	Department   Department     `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Level        int            `json:"level" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

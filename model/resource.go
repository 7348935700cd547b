package model

import (
	"errors"
	"fmt"
	"time"

	"sukoon/platform"

	"gorm.io/gorm"
)

// Resource is one self-care library item: a meditation script, breathing
// exercise or article, stored as markdown.
type Resource struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Category  string    `gorm:"type:varchar(64);index" json:"category"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Content   string    `gorm:"type:mediumtext" json:"content"`
	SourceUrl string    `gorm:"type:text" json:"source_url"`
	Premium   bool      `gorm:"default:false" json:"premium"`
	CreatedAt time.Time `json:"created_at"`
}

func CreateResource(resource *Resource) error {
	db := platform.DB
	return db.Create(resource).Error
}

func GetResource(id uint) (*Resource, error) {
	var resource Resource
	db := platform.DB
	if err := db.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resource not found")
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &resource, nil
}

func GetResourceList(category string) ([]Resource, error) {
	db := platform.DB
	var resources []Resource
	query := db.Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

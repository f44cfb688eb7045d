package models

import "github.com/google/uuid"

// Category groups products for browsing and market statistics.
type Category struct {
	ID           uuid.UUID `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Icon         string    `json:"icon" gorm:"column:icon;not null;default:''"`
	AudioLabelFR *string   `json:"audio_label_fr,omitempty" gorm:"column:audio_label_fr"`
	SortOrder    int       `json:"sort_order" gorm:"column:sort_order;not null;default:0"`
}

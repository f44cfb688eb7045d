package models

import (
	"time"

	"github.com/google/uuid"
)

// MarketSummary is editorial market commentary, optionally tied to a category.
type MarketSummary struct {
	ID          uuid.UUID  `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty" gorm:"column:category_id;type:uuid"`
	SummaryText string     `json:"summary_text" gorm:"column:summary_text;not null"`
	Date        time.Time  `json:"date" gorm:"column:date;type:date;not null"`
}

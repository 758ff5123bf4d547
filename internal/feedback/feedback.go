package feedback

import (
	"time"
)

const (
	SentimentPositive = "POSITIVE"
	SentimentNeutral  = "NEUTRAL"
	SentimentNegative = "NEGATIVE"
)

// Feedback is one free-text submission with its computed sentiment.
type Feedback struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	Category  *string   `json:"category,omitempty" gorm:"column:category"`
	Message   string    `json:"message" gorm:"column:message;not null"`
	Sentiment string    `json:"sentiment" gorm:"column:sentiment;not null"`
	Score     int       `json:"score" gorm:"column:score;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

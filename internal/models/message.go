package models

import (
	"time"
)

// Message is a directed edge between two users. A conversation is the set of
// messages in both directions between the same pair, ordered by CreatedAt.
type Message struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SenderID   uint `gorm:"not null;index" json:"senderId"`
	ReceiverID uint `gorm:"not null;index" json:"receiverId"`

	Content string `gorm:"type:text;not null" json:"content"`
	Read    bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"createdAt"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

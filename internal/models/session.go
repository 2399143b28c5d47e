package models

import "time"

// Session is one tutoring conversation on a topic. Sessions and their
// messages are written by the tutoring flow; this service exposes read
// access only.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Topic     string    `gorm:"size:255;not null" json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single utterance within a session. FromUser distinguishes
// the user's messages from the tutor's.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	SessionID uint      `gorm:"not null;index" json:"session_id"`
	Body      string    `gorm:"column:message;not null" json:"message"`
	FromUser  bool      `gorm:"not null" json:"from_user"`
	CreatedAt time.Time `json:"created_at"`
}

package model

import "time"

// Message is a directed message between two users. Rows are never edited or
// deleted; (CreatedAt, ID) ascending is the total order within a conversation.
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    int64     `json:"sender_id" db:"sender_id"`
	RecipientID int64     `json:"recipient_id" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// MessageCreate is the request body for sending a message.
type MessageCreate struct {
	Content string `json:"content" binding:"required"`
}

// Direction says whether the viewing user sent or received a message.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Conversation is a derived view, not a stored entity: for one counterparty,
// the most recent message between the viewing user and that counterparty.
type Conversation struct {
	OtherUser   UserSnapshot `json:"other_user"`
	LastMessage Message      `json:"last_message"`
	Direction   Direction    `json:"direction"`
}

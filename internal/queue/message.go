package queue

import (
	"encoding/json"
	"time"
)

// MessageVersion is the current message schema version.
const MessageVersion = 1

// Message notifies downstream consumers that a resume was saved.
type Message struct {
	ResumeID   string `json:"resumeId"`
	UserID     string `json:"userId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// NewResumeSaved builds a message for a saved resume.
func NewResumeSaved(resumeID, userID, requestID string, at time.Time) Message {
	return Message{
		ResumeID:   resumeID,
		UserID:     userID,
		RequestID:  requestID,
		EnqueuedAt: at.UTC().Format(time.RFC3339),
		Version:    MessageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

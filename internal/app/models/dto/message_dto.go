package dto

// CreateMessageRequest is the message-creation payload. The sender is
// always the authenticated caller.
type CreateMessageRequest struct {
	ReceiverID int64  `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// UpdateMessageRequest is the message-update payload
type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

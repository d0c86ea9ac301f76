package model

// ChatMessage is one entry of a chatroom log. Messages are immutable once
// received; ordering is the server's send order.
type ChatMessage struct {
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

package respond

// NotificationRespond 站内通知
type NotificationRespond struct {
	Id        uint   `json:"id"`
	SenderId  string `json:"sender_id"`
	PartyId   uint   `json:"party_id"`
	Message   string `json:"message"`
	Link      string `json:"link"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// NotificationListRespond 通知列表
type NotificationListRespond struct {
	Notifications []NotificationRespond `json:"notifications"`
	Total         int64                 `json:"total"`
	Unread        int64                 `json:"unread"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
}

// UnreadCountRespond 未读数量
type UnreadCountRespond struct {
	Unread int64 `json:"unread"`
}

// MarkReadRespond 标记已读后跳转的链接
type MarkReadRespond struct {
	Link string `json:"link"`
}

// MarkAllReadRespond 全部已读
type MarkAllReadRespond struct {
	Updated int64 `json:"updated"`
}

package respond

// PartySummaryRespond 拼单卡片
// 金额以两位小数的字符串返回
type PartySummaryRespond struct {
	Id           uint   `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	MemberLimit  int    `json:"member_limit"`
	MemberCount  int64  `json:"member_count"`
	IsFull       bool   `json:"is_full"`
	FullPrice    string `json:"full_price"`
	DividedPrice string `json:"divided_price"`
	Image        string `json:"image"`
	OwnerId      string `json:"owner_id"`
	CreatedAt    string `json:"created_at"`
}

// PartyListRespond 拼单列表
type PartyListRespond struct {
	Parties  []PartySummaryRespond `json:"parties"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// MemberRespond 拼单成员
type MemberRespond struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// JoinRequestRespond 入团申请
type JoinRequestRespond struct {
	Id          uint   `json:"id"`
	UserId      string `json:"user_id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	Status      string `json:"status"`
	RequestedAt string `json:"requested_at"`
}

// PartyDetailRespond 拼单详情
// PendingRequests 只有团长能看到；MyRequestStatus 为空表示未申请
type PartyDetailRespond struct {
	Party           PartySummaryRespond  `json:"party"`
	OwnerName       string               `json:"owner_name"`
	OwnerAvatar     string               `json:"owner_avatar"`
	OwnerPhone      string               `json:"owner_phone"`
	IsOwner         bool                 `json:"is_owner"`
	IsMember        bool                 `json:"is_member"`
	CanEdit         bool                 `json:"can_edit"`
	MyRequestStatus string               `json:"my_request_status"`
	Members         []MemberRespond      `json:"members"`
	PendingRequests []JoinRequestRespond `json:"pending_requests"`
}

// JoinStatusRespond 申请加入后的状态
// 团长申请自己的拼单时 Status 为空
type JoinStatusRespond struct {
	Status  string `json:"status"`
	Created bool   `json:"created"`
}

// ChatMessageRespond 聊天消息
// Id 使用字符串避免前端精度丢失
type ChatMessageRespond struct {
	Id        string `json:"id"`
	UserId    string `json:"user_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Message   string `json:"message"`
	Image     string `json:"image"`
	Timestamp string `json:"timestamp"`
	IsMe      bool   `json:"is_me"`
}

package respond

// LoginRespond 登录 / 注册成功响应
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	IsStaff      bool   `json:"is_staff"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenRespond 刷新 Token 响应
type TokenRespond struct {
	AccessToken string `json:"access_token"`
}

// UserInfoRespond 用户资料
type UserInfoRespond struct {
	Uuid          string `json:"uuid"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Bio           string `json:"bio"`
	PhoneNumber   string `json:"phone_number"`
	PhoneVerified bool   `json:"phone_verified"`
	Avatar        string `json:"avatar"`
	IsActive      bool   `json:"is_active"`
	IsStaff       bool   `json:"is_staff"`
	CreatedAt     string `json:"created_at"`
}

// ProfileCommentRespond 主页留言
type ProfileCommentRespond struct {
	Id           uint   `json:"id"`
	AuthorId     string `json:"author_id"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"created_at"`
}

// ProfileRespond 个人主页
type ProfileRespond struct {
	User          UserInfoRespond         `json:"user"`
	IsMe          bool                    `json:"is_me"`
	Comments      []ProfileCommentRespond `json:"comments"`
	OwnedParties  []PartySummaryRespond   `json:"owned_parties"`
	JoinedParties []PartySummaryRespond   `json:"joined_parties"`
}

// UserListRespond 管理后台用户列表
type UserListRespond struct {
	Users    []UserInfoRespond `json:"users"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

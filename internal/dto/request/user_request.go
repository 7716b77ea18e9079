package request

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// LoginRequest 用户名密码登录
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// RefreshTokenRequest 刷新 Access Token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 修改自己的资料
type UpdateProfileRequest struct {
	Email string `json:"email" form:"email" binding:"omitempty,email"`
	Bio   string `json:"bio" form:"bio" binding:"max=500"`
}

// ProfileCommentRequest 在他人主页留言
type ProfileCommentRequest struct {
	Comment string `json:"comment" form:"comment" binding:"required,max=1000"`
}

// SendPhoneCodeRequest 发送手机验证码
type SendPhoneCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,numeric,min=9,max=15"`
}

// VerifyPhoneRequest 校验手机验证码并绑定手机号
type VerifyPhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,numeric,min=9,max=15"`
	Code        string `json:"code" binding:"required,len=6"`
}

// PageRequest 通用分页参数
type PageRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

package request

// PartyFormRequest 创建 / 修改拼单，图片通过 multipart 的 image 字段上传
// FullPrice 使用字符串接收，避免浮点误差
type PartyFormRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Description string `json:"description" form:"description" binding:"max=5000"`
	Category    string `json:"category" form:"category" binding:"required,oneof=APP GAME MOVIE MUSIC PRODUCT"`
	MemberLimit int    `json:"member_limit" form:"member_limit" binding:"required,min=1,max=100"`
	FullPrice   string `json:"full_price" form:"full_price" binding:"required"`
}

// ListPartyRequest 拼单列表筛选
// Status: available 未满员，full 已满员
type ListPartyRequest struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=available full"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SendChatRequest 发送聊天消息，图片通过 multipart 的 image 字段上传
type SendChatRequest struct {
	Message string `json:"message" form:"message" binding:"max=2000"`
}

// GenerateQRRequest PromptPay 收款码
type GenerateQRRequest struct {
	Id     string `form:"id"`
	Amount string `form:"amount"`
}

package join_status_enum

// 入团申请状态
const (
	PENDING  = "PENDING"
	APPROVED = "APPROVED"
	REJECTED = "REJECTED"
)

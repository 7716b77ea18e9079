package join_action_enum

// 团长处理申请的动作
const (
	APPROVE = "approve"
	REJECT  = "reject"
)

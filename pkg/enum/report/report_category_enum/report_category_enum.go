package report_category_enum

// 举报类型
const (
	BUG   = "BUG"   // 系统问题
	USER  = "USER"  // 举报用户
	SCAM  = "SCAM"  // 诈骗
	OTHER = "OTHER" // 其他
)

func IsValid(category string) bool {
	switch category {
	case BUG, USER, SCAM, OTHER:
		return true
	}
	return false
}

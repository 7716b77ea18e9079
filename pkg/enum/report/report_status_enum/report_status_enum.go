package report_status_enum

// 举报处理状态
const (
	PENDING      = "PENDING"
	ACKNOWLEDGED = "ACKNOWLEDGED"
	RESOLVED     = "RESOLVED"
	REJECTED     = "REJECTED"
)

var All = []string{PENDING, ACKNOWLEDGED, RESOLVED, REJECTED}

func IsValid(status string) bool {
	for _, s := range All {
		if s == status {
			return true
		}
	}
	return false
}

package constants

const (
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
	AUTH_CODE_EXPIRY_MINUTES   = 5   // 短信验证码有效期（分钟）
	AUTH_CODE_RESEND_SECONDS   = 60  // 同一手机号两次发送验证码的最小间隔（秒）
	UNREAD_CACHE_SECONDS       = 60  // 未读通知数缓存时间（秒），兜底写回旧值的情况
	DEFAULT_PAGE_SIZE          = 12  // 列表默认分页大小
	MAX_PAGE_SIZE              = 100 // 列表最大分页大小
)

// Redis key 前缀
const (
	USER_TOKEN_KEY_PREFIX   = "user_token:"
	AUTH_CODE_KEY_PREFIX    = "auth_code_"
	AUTH_CODE_LOCK_PREFIX   = "auth_code_lock_"
	UNREAD_COUNT_KEY_PREFIX = "notification_unread_"
)

// NormalizePage 规范化分页参数，返回 page、pageSize 和 offset
func NormalizePage(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DEFAULT_PAGE_SIZE
	}
	if pageSize > MAX_PAGE_SIZE {
		pageSize = MAX_PAGE_SIZE
	}
	return page, pageSize, (page - 1) * pageSize
}

// TIME_LAYOUT 接口返回的时间格式
const TIME_LAYOUT = "2006-01-02 15:04:05"

package party_category_enum

// 拼单分类
const (
	APP     = "APP"
	GAME    = "GAME"
	MOVIE   = "MOVIE"
	MUSIC   = "MUSIC"
	PRODUCT = "PRODUCT"
)

// All 全部分类，按展示顺序
var All = []string{APP, GAME, MOVIE, MUSIC, PRODUCT}

// IsValid 判断分类是否合法
func IsValid(category string) bool {
	for _, c := range All {
		if c == category {
			return true
		}
	}
	return false
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party 拼单（帖子）
// 团长发布一个共享购买的邀约，其他用户申请加入后平摊价格
type Party struct {
	Id          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string          `gorm:"column:title;type:varchar(200);not null;comment:标题"`
	Description string          `gorm:"column:description;type:text;comment:描述"`
	Category    string          `gorm:"column:category;type:varchar(20);index;not null;comment:分类"`
	MemberLimit int             `gorm:"column:member_limit;not null;comment:人数上限"`
	FullPrice   decimal.Decimal `gorm:"column:full_price;type:decimal(10,2);not null;comment:总价"`
	Image       string          `gorm:"column:image;type:varchar(255);comment:图片"`
	OwnerId     string          `gorm:"column:owner_id;type:char(20);index;not null;comment:团长id"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (Party) TableName() string {
	return "party"
}

// DividedPrice 每人应付金额，保留两位小数
// 人数上限为 0 时返回总价
func (p *Party) DividedPrice() decimal.Decimal {
	return DividePrice(p.FullPrice, p.MemberLimit)
}

// DividePrice 按人数平摊价格，四舍五入到分
func DividePrice(full decimal.Decimal, limit int) decimal.Decimal {
	if limit <= 0 {
		return full.Round(2)
	}
	return full.Div(decimal.NewFromInt(int64(limit))).Round(2)
}

// Package mq 投递拼单生命周期事件
// 事件在数据库事务提交之后发送，投递失败只记日志，不影响业务结果
package mq

import (
	"context"
	"time"
)

// PartyEvent 拼单生命周期事件
type PartyEvent struct {
	Type       string    `json:"type"`
	PartyId    uint      `json:"party_id"`
	ActorId    string    `json:"actor_id"`
	TargetId   string    `json:"target_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, event PartyEvent) error
	Close() error
}

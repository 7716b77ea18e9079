// Package snowflake 生成聊天消息 id 和上传文件名
package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

const defaultMachineID = 1

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// Init 用配置中的机器号创建节点，多实例部署时每台机器需唯一
// 未调用时第一次生成 id 会使用默认机器号
func Init(machineID int64) {
	nodeOnce.Do(func() {
		if machineID < 0 || machineID > 1023 {
			zap.L().Warn("snowflake 机器号超出范围，使用默认值", zap.Int64("machineID", machineID))
			machineID = defaultMachineID
		}
		var err error
		if node, err = snowflake.NewNode(machineID); err != nil {
			zap.L().Fatal("初始化 snowflake 节点失败", zap.Error(err))
		}
	})
}

// GenerateID 同一节点内单调递增，同一毫秒的聊天消息靠它保持顺序
func GenerateID() int64 {
	Init(defaultMachineID)
	return node.Generate().Int64()
}

package redis

import "go.uber.org/zap"

// startWorkers 启动 workerNum 个协程消费任务队列，panic 后自动重启
func startWorkers(tasks <-chan func(), workerNum int) {
	for i := 0; i < workerNum; i++ {
		go runWorker(tasks)
	}
	zap.L().Info("Cache Workers started", zap.Int("workers", workerNum), zap.Int("buffer", cap(tasks)))
}

func runWorker(tasks <-chan func()) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("Cache Worker panic", zap.Any("recover", rec))
			go runWorker(tasks)
		}
	}()

	for task := range tasks {
		if task != nil {
			task()
		}
	}
}

// submit 队列满时降级为同步执行
func submit(tasks chan<- func(), action func()) {
	select {
	case tasks <- action:
	default:
		zap.L().Warn("cache task channel full, executing synchronously")
		action()
	}
}

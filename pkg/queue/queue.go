package queue

import (
	"context"

	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=queue.go -package=queue -destination=mock.go Interface
type Interface interface {
	SendMsg(ctx context.Context, queue string, body interface{}, delaySec int64) error
}

// Log stands in for SQS when the bot runs without AWS: bodies are only logged.
type Log struct {
	Logger *zap.Logger
}

func (l Log) SendMsg(_ context.Context, queue string, body interface{}, delaySec int64) error {
	l.Logger.Debug("queue disabled, message dropped",
		zap.String("queue", queue), zap.Any("body", body), zap.Int64("delay", delaySec))
	return nil
}

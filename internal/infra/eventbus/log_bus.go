package eventbus

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"app/internal/domain/model"
)

// LogEventBusはドメインイベントを構造化ログに書くだけのバス。
// 外部のメッセージブローカーへ差し替える場合もこの形で受ける。
type LogEventBus struct {
	logger *log.Logger
}

func NewLogEventBus() *LogEventBus {
	l := log.New("eventbus")
	l.SetHeader(`{"time":"${time_rfc3339}","prefix":"${prefix}","level":"${level}"}`)
	return &LogEventBus{logger: l}
}

func (b *LogEventBus) Publish(ctx context.Context, events []model.DomainEvent) error {
	for _, e := range events {
		b.logger.Infoj(log.JSON{
			"type":    e.Type(),
			"payload": fmt.Sprintf("%+v", e),
		})
	}
	return nil
}

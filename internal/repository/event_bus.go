package repository

import (
	"context"

	"app/internal/domain/model"
)

// EventBusはcommit後にドメインイベントを受け取る外部コラボレータ。
// 配送・リトライの保証はバス側の責務。
type EventBus interface {
	Publish(ctx context.Context, events []model.DomainEvent) error
}

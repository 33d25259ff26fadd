package domain

import (
	"context"
	"time"
)

// BroadcastJob содержит задачу массовой рассылки от администратора.
type BroadcastJob struct {
	ID          string    `json:"job_id"`
	Platform    string    `json:"platform"`
	Text        string    `json:"text"`
	RequestedBy int64     `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// BroadcastQueue описывает очередь задач рассылки.
type BroadcastQueue interface {
	Enqueue(ctx context.Context, job BroadcastJob) error
	Receive(ctx context.Context) (BroadcastJob, BroadcastAckFunc, error)
}

// BroadcastAckFunc подтверждает успешную обработку или запрашивает повтор доставки задачи.
type BroadcastAckFunc func(success bool) error

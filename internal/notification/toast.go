package notification

import (
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier 接收使用者可見的一次性通知
// 收銀核心只負責發出，顯示方式由外部決定
type Notifier interface {
	Notify(message string, level Level)
}

type Toast struct {
	Message   string    `json:"message"`
	Level     Level     `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// ToastQueue 有界FIFO通知佇列
// 佇列滿了會丟棄最舊的一筆，通知只是提示性質不保證送達
type ToastQueue struct {
	mu    sync.Mutex
	max   int
	items []Toast
}

const defaultToastCapacity = 64

func NewToastQueue(capacity int) *ToastQueue {
	if capacity <= 0 {
		capacity = defaultToastCapacity
	}
	return &ToastQueue{max: capacity}
}

func (q *ToastQueue) Notify(message string, level Level) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.max {
		q.items = q.items[1:]
	}
	q.items = append(q.items, Toast{
		Message:   message,
		Level:     level,
		CreatedAt: time.Now(),
	})
}

// Drain 取出並清空目前累積的通知
func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

func (q *ToastQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

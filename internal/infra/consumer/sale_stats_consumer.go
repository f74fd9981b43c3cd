package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type ConsumerError error

var (
	ErrConsumerClosed     = errors.New("consumer closed")
	ErrUnknownEventFormat = errors.New("unknown event format")
)

type ISaleStatsConsumer interface {
	Start(ctx context.Context) error
	Stop()
}

// SaleStatsConsumer 消費sale事件並累加儀表板當日統計
// 統計是近似值(at-least-once消費可能重複累加)，精確數字以Postgres為準
type SaleStatsConsumer struct {
	reader    *kafka.Reader
	statsRepo *redis_repo.StatsRepo
	logger    zerolog.Logger
	closeOnce sync.Once
	closeChan chan struct{}
}

func NewSaleStatsConsumer(brokers []string, topic, groupID string, statsRepo *redis_repo.StatsRepo, logger zerolog.Logger) *SaleStatsConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &SaleStatsConsumer{
		reader:    reader,
		statsRepo: statsRepo,
		logger:    logger,
		closeChan: make(chan struct{}),
	}
}

// Start 阻塞式消費迴圈，ctx取消或Stop()時結束
func (c *SaleStatsConsumer) Start(ctx context.Context) error {
	for {
		select {
		case <-c.closeChan:
			return ErrConsumerClosed
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			c.logger.Error().Err(err).Msg("failed to fetch message")
			continue
		}

		if err := c.handleMessage(ctx, msg); err != nil {
			c.logger.Error().Err(err).
				Str("topic", msg.Topic).
				Int64("offset", msg.Offset).
				Msg("failed to handle sale event")
			// 壞消息直接跳過，不卡住整個分區
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error().Err(err).Msg("failed to commit message")
		}
	}
}

func (c *SaleStatsConsumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	if eventType(msg) != string(evt_model.SaleCompletedEventName) {
		return nil
	}

	var event evt_model.SaleCompletedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ErrUnknownEventFormat
	}

	itemCount := 0
	for _, item := range event.Items {
		itemCount += item.Quantity
	}
	return c.statsRepo.AddSale(ctx, event.SaleDate, event.Amount, itemCount)
}

func eventType(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

func (c *SaleStatsConsumer) Stop() {
	c.closeOnce.Do(func() {
		close(c.closeChan)
		if err := c.reader.Close(); err != nil {
			c.logger.Error().Err(err).Msg("failed to close kafka reader")
		}
	})
}

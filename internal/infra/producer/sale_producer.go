package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
	"github.com/segmentio/kafka-go"
)

// 以saleID做key，同一筆交易的事件保證進同一分區
type ISaleEventProducer interface {
	ProduceSaleCompleted(ctx context.Context, event *evt_model.SaleCompletedEvent) error
	ProduceCatalogUpdated(ctx context.Context, event *evt_model.CatalogUpdatedEvent) error
	Close() error
}

type SaleEventProducer struct {
	writer *kafka.Writer
}

func NewSaleEventProducer(brokers []string, topic string) *SaleEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 100 * time.Millisecond,
		Async:        false,

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka producer error: "+msg, args...)
		}),

		// 壓縮設置
		Compression: kafka.Snappy,
	}
	return &SaleEventProducer{writer: writer}
}

func (p *SaleEventProducer) ProduceSaleCompleted(ctx context.Context, event *evt_model.SaleCompletedEvent) error {
	msg, err := p.convertToMessage(event.SaleID, event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to produce sale completed event: %w", err)
	}
	return nil
}

// 以商品ID做key，同一商品的異動保序
func (p *SaleEventProducer) ProduceCatalogUpdated(ctx context.Context, event *evt_model.CatalogUpdatedEvent) error {
	msg, err := p.convertToMessage(event.AggregateID, event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to produce catalog updated event: %w", err)
	}
	return nil
}

func (p *SaleEventProducer) convertToMessage(key string, event evt_model.Event) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type())},
		},
	}, nil
}

func (p *SaleEventProducer) Close() error {
	return p.writer.Close()
}

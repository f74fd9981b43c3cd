package eventdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
)

type EventFormatError error

var ErrEventFormat EventFormatError = errors.New("event format error")

// EventDao 交易事件的稽核軌跡
// 每筆sale一個stream，追加不改寫
type EventDao struct {
	client *esdb.Client
}

func NewEventDao(db *esdb.Client) *EventDao {
	return &EventDao{client: db}
}

func SaleStreamID(saleID string) string {
	return fmt.Sprintf("sale-%s", saleID)
}

// 寫入事件（Create）
func (dao *EventDao) AppendEvent(ctx context.Context, streamID, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	eventData := esdb.EventData{
		ContentType: esdb.ContentTypeJson,
		EventType:   eventType,
		Data:        payload,
	}
	_, err = dao.client.AppendToStream(ctx, streamID, esdb.AppendToStreamOptions{}, eventData)
	return err
}

// 讀取事件（Read）
func (dao *EventDao) ReadEvents(ctx context.Context, streamID string) ([]*esdb.ResolvedEvent, error) {
	opts := esdb.ReadStreamOptions{}
	stream, err := dao.client.ReadStream(ctx, streamID, opts, 100)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var events []*esdb.ResolvedEvent
	for {
		event, err := stream.Recv()
		if err != nil {
			break
		}
		events = append(events, event)
	}
	return events, nil
}

// DecodeSaleEvents 把稽核stream的原始事件還原成SaleCompletedEvent
// 壞掉的payload回傳 ErrEventFormat，不靜默跳過
func DecodeSaleEvents(resolved []*esdb.ResolvedEvent) ([]evt_model.SaleCompletedEvent, error) {
	events := make([]evt_model.SaleCompletedEvent, 0, len(resolved))
	for _, re := range resolved {
		if re.Event == nil {
			return nil, fmt.Errorf("%w: resolved event has no recorded event", ErrEventFormat)
		}
		var event evt_model.SaleCompletedEvent
		if err := json.Unmarshal(re.Event.Data, &event); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrEventFormat, re.Event.EventType)
		}
		events = append(events, event)
	}
	return events, nil
}

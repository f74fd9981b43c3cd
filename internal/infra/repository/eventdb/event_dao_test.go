package eventdb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSaleStreamID(t *testing.T) {
	require.Equal(t, "sale-abc-123", SaleStreamID("abc-123"))
}

func TestDecodeSaleEvents(t *testing.T) {
	event := evt_model.NewSaleCompletedEvent(
		"sale-1",
		0,
		[]evt_model.SaleItemData{
			{ProductID: 1, ProductName: "Produk 1", Quantity: 3, UnitPrice: decimal.NewFromInt(9000), SubTotal: decimal.NewFromInt(27000), PriceOrigin: "grosir"},
		},
		decimal.NewFromInt(27000),
		time.Now(),
	)
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	decoded, err := DecodeSaleEvents([]*esdb.ResolvedEvent{
		{Event: &esdb.RecordedEvent{EventType: string(evt_model.SaleCompletedEventName), Data: payload}},
	})
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, "sale-1", decoded[0].SaleID)
	require.Len(t, decoded[0].Items, 1)
	require.Equal(t, "grosir", decoded[0].Items[0].PriceOrigin)
	require.True(t, decimal.NewFromInt(27000).Equal(decoded[0].Amount))
}

func TestDecodeSaleEventsEmptyStream(t *testing.T) {
	decoded, err := DecodeSaleEvents(nil)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeSaleEventsMalformedPayload(t *testing.T) {
	_, err := DecodeSaleEvents([]*esdb.ResolvedEvent{
		{Event: &esdb.RecordedEvent{EventType: "SaleCompleted", Data: []byte("not json at all")}},
	})
	require.ErrorIs(t, err, ErrEventFormat)

	_, err = DecodeSaleEvents([]*esdb.ResolvedEvent{{Event: nil}})
	require.ErrorIs(t, err, ErrEventFormat)
}

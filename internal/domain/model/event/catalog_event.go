package model

import "strconv"

// CatalogUpdatedEvent 型錄異動通知
// 其他收銀台收到後重新拉取型錄快照
type CatalogUpdatedEvent struct {
	BaseEvent
	ProductID uint   `json:"product_id"`
	Action    string `json:"action"`
}

const (
	CatalogActionCreated = "created"
	CatalogActionUpdated = "updated"
	CatalogActionDeleted = "deleted"
)

func NewCatalogUpdatedEvent(productID uint, action string) *CatalogUpdatedEvent {
	return &CatalogUpdatedEvent{
		BaseEvent: *NewBaseEvent(strconv.FormatUint(uint64(productID), 10), CatalogUpdatedEventName),
		ProductID: productID,
		Action:    action,
	}
}

func (e *CatalogUpdatedEvent) Type() EventType {
	return CatalogUpdatedEventName
}

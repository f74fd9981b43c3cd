package constants

type contextKey string

const (
	// RequestIDKey 放進request context的追蹤ID
	RequestIDKey contextKey = "request_id"
)

const (
	// DefaultCashierUser 偏好設定在單機模式下共用的使用者
	DefaultCashierUser = "default"
)

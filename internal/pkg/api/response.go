package api

import (
	"encoding/json"
	"net/http"
)

// Response 成功回應的固定外層
type Response struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// ResponseError 錯誤回應的固定外層
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func SuccessJSON(w http.ResponseWriter, data any, meta any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Data: data, Meta: meta})
}

func ErrorJSON(w http.ResponseWriter, status int, err error, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := ResponseError{Code: status, Message: message}
	if err != nil {
		body.Details = err.Error()
	}
	json.NewEncoder(w).Encode(body)
}

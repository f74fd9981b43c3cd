package util

import (
	"github.com/google/uuid"
)

func GenerateSaleID() string {
	return uuid.New().String()
}

package common

import (
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// IntPtr 取得 int 指標
func IntPtr(v int) *int {
	return &v
}

// StringPtr 取得 string 指標
func StringPtr(v string) *string {
	return &v
}

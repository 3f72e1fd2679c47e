package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// 价格在 JSON 文件中保持数字格式，与历史数据一致
	decimal.MarshalJSONWithoutQuotes = true
}

// NewID 生成记录 ID
// 使用 UUIDv7：按时间有序，且不会像时间戳那样在同一毫秒内冲突
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

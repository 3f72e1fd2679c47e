package dto

import (
	"bytes"
	"encoding/json"

	"foodshop/internal/model"
)

// PlaceOrderRequest 下单请求
// productId 兼容数字与字符串，quantity 兼容数字与数字字符串
type PlaceOrderRequest struct {
	ProductID     FlexString      `json:"productId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Quantity      json.RawMessage `json:"quantity"`
}

// OrderResponse 下单响应
type OrderResponse struct {
	Success bool           `json:"success"`
	Invoice *model.Invoice `json:"invoice,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// FlexString 接受 JSON 字符串或数字
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

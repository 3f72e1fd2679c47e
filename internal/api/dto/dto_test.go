package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodshop/internal/service"
)

func TestPlaceOrderRequest_Unmarshal(t *testing.T) {
	var req PlaceOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"productId":1715000000000,"customerName":"A","customerEmail":"a@example.com","quantity":"2"}`), &req))
	assert.Equal(t, FlexString("1715000000000"), req.ProductID)
	assert.JSONEq(t, `"2"`, string(req.Quantity))

	require.NoError(t, json.Unmarshal([]byte(`{"productId":"0190-abc"}`), &req))
	assert.Equal(t, FlexString("0190-abc"), req.ProductID)

	assert.Error(t, json.Unmarshal([]byte(`{"productId":{}}`), &req))
}

func TestProductForm(t *testing.T) {
	f := ProductForm{Price: " 25000 ", ThumbnailIndex: "2", ExistingImages: `["/uploads/a.jpg"]`}

	price, err := f.ParsePrice()
	require.NoError(t, err)
	assert.Equal(t, "25000", price.String())
	assert.Equal(t, 2, *f.ThumbnailIdx())

	images, err := f.ParseExistingImages()
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg"}, images)

	bad := ProductForm{Price: "abc", ThumbnailIndex: "x", ExistingImages: "not-json"}
	_, err = bad.ParsePrice()
	assert.ErrorIs(t, err, service.ErrInvalidPrice)
	assert.Nil(t, bad.ThumbnailIdx())
	_, err = bad.ParseExistingImages()
	assert.Error(t, err)
}

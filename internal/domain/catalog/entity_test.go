//go:build unit

package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func i32Ptr(n int32) *int32   { return &n }

func TestNewItem(t *testing.T) {
	tests := []struct {
		name         string
		kind         Kind
		itemName     string
		priceCents   int64
		deliveryURL  *string
		durationDays *int32
		wantErr      error
	}{
		{"valid product", KindProduct, "Go ebook", 4990, strPtr("https://files.example/ebook.pdf"), nil, nil},
		{"valid pass", KindPass, "monthly group", 9900, nil, i32Ptr(30), nil},
		{"free item allowed", KindProduct, "sample chapter", 0, strPtr("https://files.example/sample.pdf"), nil, nil},
		{"empty name", KindProduct, "", 4990, strPtr("https://files.example/ebook.pdf"), nil, ErrEmptyName},
		{"negative price", KindProduct, "Go ebook", -1, strPtr("https://files.example/ebook.pdf"), nil, ErrNegativePrice},
		{"product without url", KindProduct, "Go ebook", 4990, nil, nil, ErrMissingDeliveryURL},
		{"product with empty url", KindProduct, "Go ebook", 4990, strPtr(""), nil, ErrMissingDeliveryURL},
		{"pass without duration", KindPass, "monthly group", 9900, nil, nil, ErrInvalidDuration},
		{"pass with zero duration", KindPass, "monthly group", 9900, nil, i32Ptr(0), ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem(uuid.New(), tt.kind, tt.itemName, tt.priceCents, tt.deliveryURL, tt.durationDays)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.itemName, item.Name())
			assert.Equal(t, tt.kind, item.Kind())
		})
	}
}

func TestItem_PassDuration(t *testing.T) {
	pass, err := NewItem(uuid.New(), KindPass, "monthly group", 9900, nil, i32Ptr(30))
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, pass.PassDuration())

	product, err := NewItem(uuid.New(), KindProduct, "Go ebook", 4990, strPtr("https://files.example/ebook.pdf"), nil)
	require.NoError(t, err)
	assert.Zero(t, product.PassDuration())
}

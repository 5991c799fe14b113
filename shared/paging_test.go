package shared

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaging(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&pageSize=50", 3, 50},
		{"clamps page size", "pageSize=500", 1, 100},
		{"ignores zero", "page=0&pageSize=0", 1, 20},
		{"ignores negative", "page=-2&pageSize=-5", 1, 20},
		{"ignores garbage", "page=abc&pageSize=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			paging := ParsePaging(values)
			assert.Equal(t, tt.wantPage, paging.Page)
			assert.Equal(t, tt.wantPageSize, paging.PageSize)
		})
	}
}

func TestPagingLimitOffset(t *testing.T) {
	paging := Paging{Page: 3, PageSize: 25}
	assert.Equal(t, 25, paging.Limit())
	assert.Equal(t, 50, paging.Offset())
}

func TestParseListProductsParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params, err := ParseListProductsParams(url.Values{})
		require.NoError(t, err)

		assert.Equal(t, ProductSortNewest, params.Sort)
		assert.Empty(t, params.Category)
		assert.Nil(t, params.MinPrice)
		assert.Nil(t, params.MaxPrice)
	})

	t.Run("full filter set", func(t *testing.T) {
		values, err := url.ParseQuery("category=bikes&status=available&q=road&minPrice=1000&maxPrice=50000&sort=price_asc")
		require.NoError(t, err)

		params, err := ParseListProductsParams(values)
		require.NoError(t, err)

		assert.Equal(t, "bikes", params.Category)
		assert.Equal(t, ProductStatusAvailable, params.Status)
		assert.Equal(t, "road", params.Query)
		require.NotNil(t, params.MinPrice)
		assert.Equal(t, int64(1000), *params.MinPrice)
		require.NotNil(t, params.MaxPrice)
		assert.Equal(t, int64(50000), *params.MaxPrice)
		assert.Equal(t, ProductSortPriceAsc, params.Sort)
	})

	t.Run("rejects bad status", func(t *testing.T) {
		_, err := ParseListProductsParams(url.Values{"status": {"pending"}})
		assert.Error(t, err)
	})

	t.Run("rejects bad sort", func(t *testing.T) {
		_, err := ParseListProductsParams(url.Values{"sort": {"cheapest"}})
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := ParseListProductsParams(url.Values{"minPrice": {"-5"}})
		assert.Error(t, err)
	})

	t.Run("rejects inverted price range", func(t *testing.T) {
		_, err := ParseListProductsParams(url.Values{"minPrice": {"100"}, "maxPrice": {"50"}})
		assert.Error(t, err)
	})
}

func TestStatusEnums(t *testing.T) {
	assert.True(t, ProductStatusAvailable.IsValid())
	assert.True(t, ProductStatusSold.IsValid())
	assert.True(t, ProductStatusReserved.IsValid())
	assert.False(t, ProductStatus("pending").IsValid())

	assert.True(t, RoomStatusWaiting.IsValid())
	assert.True(t, RoomStatusActive.IsValid())
	assert.True(t, RoomStatusEnded.IsValid())
	assert.False(t, RoomStatus("open").IsValid())
}

func TestGetRandomAlphanumeric(t *testing.T) {
	pin, err := GetRandomAlphanumeric(6)
	require.NoError(t, err)
	require.Len(t, pin, 6)

	for _, b := range pin {
		assert.Contains(t, string(letters), string(b))
	}
}

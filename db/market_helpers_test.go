package db

import (
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(n int64) *int64 { return &n }

func TestBuildProductFilters(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		where, args := buildProductFilters(&shared.ListProductsParams{})
		assert.Equal(t, "1=1", where)
		assert.Empty(t, args)
	})

	t.Run("all filters", func(t *testing.T) {
		params := &shared.ListProductsParams{
			Category: "bikes",
			Status:   shared.ProductStatusAvailable,
			SellerId: "seller-1",
			Query:    "road",
			MinPrice: int64Ptr(1000),
			MaxPrice: int64Ptr(50000),
		}

		where, args := buildProductFilters(params)

		assert.Equal(t, "1=1 AND category = $1 AND status = $2 AND seller_id::text = $3 AND title ILIKE $4 AND price_cents >= $5 AND price_cents <= $6", where)
		require.Len(t, args, 6)
		assert.Equal(t, "bikes", args[0])
		assert.Equal(t, shared.ProductStatusAvailable, args[1])
		assert.Equal(t, "seller-1", args[2])
		assert.Equal(t, "%road%", args[3])
		assert.Equal(t, int64(1000), args[4])
		assert.Equal(t, int64(50000), args[5])
	})

	t.Run("partial filters keep positions contiguous", func(t *testing.T) {
		params := &shared.ListProductsParams{
			Status:   shared.ProductStatusSold,
			MaxPrice: int64Ptr(200),
		}

		where, args := buildProductFilters(params)

		assert.Equal(t, "1=1 AND status = $1 AND price_cents <= $2", where)
		require.Len(t, args, 2)
	})
}

func TestProductOrderBy(t *testing.T) {
	assert.Equal(t, "created_at DESC", productOrderBy(shared.ProductSortNewest))
	assert.Equal(t, "created_at ASC", productOrderBy(shared.ProductSortOldest))
	assert.Equal(t, "price_cents ASC, created_at DESC", productOrderBy(shared.ProductSortPriceAsc))
	assert.Equal(t, "price_cents DESC, created_at DESC", productOrderBy(shared.ProductSortPriceDesc))

	// unknown sorts fall back to newest
	assert.Equal(t, "created_at DESC", productOrderBy(shared.ProductSort("bogus")))
}

func TestListProducts(t *testing.T) {
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDb.Close()

	prev := Conn
	Conn = sqlx.NewDb(mockDb, "sqlmock")
	defer func() { Conn = prev }()

	params := &shared.ListProductsParams{
		Status: shared.ProductStatusAvailable,
		Sort:   shared.ProductSortPriceAsc,
		Paging: shared.Paging{Page: 2, PageSize: 10},
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE 1=1 AND status = $1")).
		WithArgs(params.Status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM products WHERE 1=1 AND status = $1 ORDER BY price_cents ASC, created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs(params.Status, 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "title", "description", "price_cents", "category", "status", "created_at", "updated_at"}).
			AddRow("p1", "u1", "Road bike", "", 99900, "bikes", "available", testTime(), testTime()))

	products, total, err := ListProducts(params)
	require.NoError(t, err)

	assert.Equal(t, 42, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Road bike", products[0].Title)
	assert.Equal(t, int64(99900), products[0].PriceCents)
	assert.Equal(t, shared.ProductStatusAvailable, products[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

package shared

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Paging struct {
	Page     int
	PageSize int
}

func (p Paging) Limit() int {
	return p.PageSize
}

func (p Paging) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePaging reads page/pageSize query params, clamping them to sane
// bounds. Missing or malformed values fall back to the defaults.
func ParsePaging(q url.Values) Paging {
	paging := Paging{Page: 1, PageSize: DefaultPageSize}

	if s := q.Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			paging.Page = n
		}
	}

	if s := q.Get("pageSize"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			paging.PageSize = n
		}
	}

	if paging.PageSize > MaxPageSize {
		paging.PageSize = MaxPageSize
	}

	return paging
}

type ProductSort string

const (
	ProductSortNewest    ProductSort = "newest"
	ProductSortOldest    ProductSort = "oldest"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
)

func (s ProductSort) IsValid() bool {
	switch s {
	case ProductSortNewest, ProductSortOldest, ProductSortPriceAsc, ProductSortPriceDesc:
		return true
	}
	return false
}

type ListProductsParams struct {
	Category string
	Status   ProductStatus
	SellerId string
	Query    string
	MinPrice *int64
	MaxPrice *int64
	Sort     ProductSort
	Paging   Paging
}

// ParseListProductsParams reads the marketplace listing filters from the
// query string. Enumerated literals are rejected rather than ignored so a
// client typo doesn't silently return the unfiltered listing.
func ParseListProductsParams(q url.Values) (*ListProductsParams, error) {
	params := &ListProductsParams{
		Category: q.Get("category"),
		SellerId: q.Get("sellerId"),
		Query:    q.Get("q"),
		Sort:     ProductSortNewest,
		Paging:   ParsePaging(q),
	}

	if s := q.Get("status"); s != "" {
		status := ProductStatus(s)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status: %s", s)
		}
		params.Status = status
	}

	if s := q.Get("sort"); s != "" {
		sort := ProductSort(s)
		if !sort.IsValid() {
			return nil, fmt.Errorf("invalid sort: %s", s)
		}
		params.Sort = sort
	}

	if s := q.Get("minPrice"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid minPrice: %s", s)
		}
		params.MinPrice = &n
	}

	if s := q.Get("maxPrice"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid maxPrice: %s", s)
		}
		params.MaxPrice = &n
	}

	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return nil, fmt.Errorf("minPrice is greater than maxPrice")
	}

	return params, nil
}

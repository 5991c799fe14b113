package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/DamienMonchaty/VIbe/shared"
)

func CreateProduct(sellerId string, req *shared.CreateProductRequest) (*Product, error) {
	var product Product
	err := Conn.Get(&product, "INSERT INTO products (seller_id, title, description, price_cents, category) VALUES ($1, $2, $3, $4, $5) RETURNING *", sellerId, req.Title, req.Description, req.PriceCents, req.Category)

	if err != nil {
		return nil, fmt.Errorf("error creating product: %v", err)
	}

	return &product, nil
}

func GetProduct(productId string) (*Product, error) {
	var product Product
	err := Conn.Get(&product, "SELECT * FROM products WHERE id = $1", productId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting product: %v", err)
	}

	return &product, nil
}

// buildProductFilters turns the listing params into a WHERE clause with
// positional args. The sort key is mapped through a whitelist, never
// interpolated from user input.
func buildProductFilters(params *shared.ListProductsParams) (where string, args []interface{}) {
	clauses := []string{"1=1"}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if params.Category != "" {
		add("category = $%d", params.Category)
	}
	if params.Status != "" {
		add("status = $%d", params.Status)
	}
	if params.SellerId != "" {
		add("seller_id::text = $%d", params.SellerId)
	}
	if params.Query != "" {
		add("title ILIKE $%d", "%"+params.Query+"%")
	}
	if params.MinPrice != nil {
		add("price_cents >= $%d", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		add("price_cents <= $%d", *params.MaxPrice)
	}

	return strings.Join(clauses, " AND "), args
}

func productOrderBy(sort shared.ProductSort) string {
	switch sort {
	case shared.ProductSortOldest:
		return "created_at ASC"
	case shared.ProductSortPriceAsc:
		return "price_cents ASC, created_at DESC"
	case shared.ProductSortPriceDesc:
		return "price_cents DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func ListProducts(params *shared.ListProductsParams) ([]*Product, int, error) {
	var products []*Product
	var total int

	where, args := buildProductFilters(params)

	err := Conn.Get(&total, "SELECT COUNT(*) FROM products WHERE "+where, args...)

	if err != nil {
		return nil, 0, fmt.Errorf("error counting products: %v", err)
	}

	query := fmt.Sprintf("SELECT * FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d", where, productOrderBy(params.Sort), len(args)+1, len(args)+2)
	args = append(args, params.Paging.Limit(), params.Paging.Offset())

	err = Conn.Select(&products, query, args...)

	if err != nil {
		return nil, 0, fmt.Errorf("error listing products: %v", err)
	}

	return products, total, nil
}

func UpdateProduct(product *Product) error {
	_, err := Conn.Exec("UPDATE products SET title = $1, description = $2, price_cents = $3, category = $4, updated_at = NOW() WHERE id = $5", product.Title, product.Description, product.PriceCents, product.Category, product.Id)

	if err != nil {
		return fmt.Errorf("error updating product: %v", err)
	}

	return nil
}

func UpdateProductStatus(productId string, status shared.ProductStatus) error {
	_, err := Conn.Exec("UPDATE products SET status = $1, updated_at = NOW() WHERE id = $2", status, productId)

	if err != nil {
		return fmt.Errorf("error updating product status: %v", err)
	}

	return nil
}

func DeleteProduct(productId string) error {
	_, err := Conn.Exec("DELETE FROM products WHERE id = $1", productId)

	if err != nil {
		return fmt.Errorf("error deleting product: %v", err)
	}

	return nil
}

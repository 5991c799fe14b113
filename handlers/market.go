package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/DamienMonchaty/VIbe/types"
	"github.com/gorilla/mux"
)

const maxPriceCents = 1_000_000_000

func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreateProductHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreateProductRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Title = strings.TrimSpace(req.Title)

	if req.Title == "" || len(req.Title) > 200 {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Title must be between 1 and 200 characters",
		})
		return
	}

	if req.PriceCents <= 0 || req.PriceCents > maxPriceCents {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Price must be positive and less than 10^9 cents",
		})
		return
	}

	product, err := db.CreateProduct(auth.User.Id, &req)

	if err != nil {
		log.Printf("Error creating product: %v\n", err)
		http.Error(w, "Error creating product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for CreateProductHandler")

	writeJson(w, product.ToApi(auth.User.ToApi()))
}

func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ListProductsHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	params, err := shared.ParseListProductsParams(r.URL.Query())

	if err != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    err.Error(),
		})
		return
	}

	products, total, err := db.ListProducts(params)

	if err != nil {
		log.Println("Error listing products: ", err)
		http.Error(w, "Error listing products: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sellerIds := make([]string, 0, len(products))
	for _, product := range products {
		sellerIds = append(sellerIds, product.SellerId)
	}

	sellersById, err := db.GetUsersByIds(sellerIds)

	if err != nil {
		log.Println("Error getting product sellers: ", err)
		http.Error(w, "Error getting product sellers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiProducts := make([]*shared.Product, 0, len(products))
	for _, product := range products {
		var seller *shared.User
		if u := sellersById[product.SellerId]; u != nil {
			seller = u.ToApi()
		}
		apiProducts = append(apiProducts, product.ToApi(seller))
	}

	log.Println("Successfully processed request for ListProductsHandler")

	writeJson(w, shared.ListProductsResponse{Products: apiProducts, Total: total})
}

func GetProductHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for GetProductHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	productId := vars["productId"]

	product := getProductOr404(w, productId)
	if product == nil {
		return
	}

	seller, err := db.GetUser(product.SellerId)

	if err != nil {
		log.Printf("Error getting product seller: %v\n", err)
		http.Error(w, "Error getting product seller: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var apiSeller *shared.User
	if seller != nil {
		apiSeller = seller.ToApi()
	}

	log.Println("Successfully processed request for GetProductHandler")

	writeJson(w, product.ToApi(apiSeller))
}

func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdateProductHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	productId := vars["productId"]

	product := authorizeProductSeller(w, productId, auth)
	if product == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.UpdateProductRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 200 {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Title must be between 1 and 200 characters",
			})
			return
		}
		product.Title = title
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.PriceCents != nil {
		if *req.PriceCents <= 0 || *req.PriceCents > maxPriceCents {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Price must be positive and less than 10^9 cents",
			})
			return
		}
		product.PriceCents = *req.PriceCents
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	err = db.UpdateProduct(product)

	if err != nil {
		log.Printf("Error updating product: %v\n", err)
		http.Error(w, "Error updating product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for UpdateProductHandler")

	writeJson(w, product.ToApi(auth.User.ToApi()))
}

func UpdateProductStatusHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdateProductStatusHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	productId := vars["productId"]

	product := authorizeProductSeller(w, productId, auth)
	if product == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.UpdateProductStatusRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !req.Status.IsValid() {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Status must be one of available, sold, reserved",
		})
		return
	}

	err = db.UpdateProductStatus(productId, req.Status)

	if err != nil {
		log.Printf("Error updating product status: %v\n", err)
		http.Error(w, "Error updating product status: "+err.Error(), http.StatusInternalServerError)
		return
	}

	product.Status = req.Status

	log.Println("Successfully processed request for UpdateProductStatusHandler")

	writeJson(w, product.ToApi(auth.User.ToApi()))
}

func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for DeleteProductHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	productId := vars["productId"]

	product := authorizeProductSeller(w, productId, auth)
	if product == nil {
		return
	}

	err := db.DeleteProduct(productId)

	if err != nil {
		log.Printf("Error deleting product: %v\n", err)
		http.Error(w, "Error deleting product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for DeleteProductHandler")
}

func getProductOr404(w http.ResponseWriter, productId string) *db.Product {
	product, err := db.GetProduct(productId)

	if err != nil {
		log.Printf("Error getting product: %v\n", err)
		http.Error(w, "Error getting product: "+err.Error(), http.StatusInternalServerError)
		return nil
	}

	if product == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Product not found",
		})
		return nil
	}

	return product
}

func authorizeProductSeller(w http.ResponseWriter, productId string, auth *types.ServerAuth) *db.Product {
	product := getProductOr404(w, productId)
	if product == nil {
		return nil
	}

	if product.SellerId != auth.User.Id {
		log.Println("User is not the product seller")

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "Only the seller can do that",
		})
		return nil
	}

	return product
}

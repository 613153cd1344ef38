package storeclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matheusmosca/store-backend/internal/catalog"
	"github.com/matheusmosca/store-backend/internal/coupons"
	"github.com/matheusmosca/store-backend/internal/transactions"
)

// APIError é a resposta de erro da API
type APIError struct {
	StatusCode int      `json:"-"`
	Err        string   `json:"error"`
	Messages   []string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Err, strings.Join(e.Messages, "; "))
}

// Client é o cliente HTTP da API da loja
type Client struct {
	http *resty.Client
}

// New cria um cliente apontando para baseURL
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10*time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// NewWithHTTPClient usa um *http.Client próprio (ex: com instrumentação)
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		http: resty.NewWithClient(hc).
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	apiErr := &APIError{}
	req := c.http.R().SetContext(ctx).SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return nil
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) CreateCategory(ctx context.Context, req catalog.CreateCategoryRequest) (*catalog.Category, error) {
	var out catalog.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCategory(ctx context.Context, id uint, withProducts bool) (*catalog.Category, error) {
	var query map[string]string
	if withProducts {
		query = map[string]string{"products": "true"}
	}

	var out catalog.Category
	if err := c.do(ctx, http.MethodGet, idPath("/categories", id), query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (*catalog.Product, error) {
	var out catalog.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id uint) (*catalog.Product, error) {
	var out catalog.Product
	if err := c.do(ctx, http.MethodGet, idPath("/products", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context, filter catalog.ProductFilter) (*catalog.ProductPage, error) {
	query := map[string]string{
		"take": strconv.Itoa(filter.Take),
		"skip": strconv.Itoa(filter.Skip),
	}
	if filter.CategoryID != nil {
		query["category_id"] = strconv.FormatUint(uint64(*filter.CategoryID), 10)
	}

	var out catalog.ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCoupon(ctx context.Context, req coupons.CreateCouponRequest) (*coupons.Coupon, error) {
	var out coupons.Coupon
	if err := c.do(ctx, http.MethodPost, "/coupons", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApplyCoupon(ctx context.Context, name string) (*coupons.ApplyCouponResponse, error) {
	var out coupons.ApplyCouponResponse
	body := coupons.ApplyCouponRequest{CouponName: name}
	if err := c.do(ctx, http.MethodPost, "/coupons/apply-coupon", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req transactions.CreateTransactionRequest) (*transactions.MessageResponse, error) {
	var out transactions.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTransactions lista as vendas; transactionDate vazio lista todas
func (c *Client) ListTransactions(ctx context.Context, transactionDate string) ([]transactions.Transaction, error) {
	var query map[string]string
	if transactionDate != "" {
		query = map[string]string{"transactionDate": transactionDate}
	}

	var out []transactions.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTransaction(ctx context.Context, id uint) (*transactions.Transaction, error) {
	var out transactions.Transaction
	if err := c.do(ctx, http.MethodGet, idPath("/transactions", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id uint) (*transactions.MessageResponse, error) {
	var out transactions.MessageResponse
	if err := c.do(ctx, http.MethodDelete, idPath("/transactions", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and initialises the shared HMAC hasher pool used to sign cart
// merge requests.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// /api/auth/register and keeps the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	var created models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&created).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return created, nil
}

// Login implements [ServerAdapter]. It POSTs email and password to
// /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&foundUser).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return foundUser, nil
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	if err := h.getJSON(ctx, "/api/user/profile", nil, &user); err != nil {
		return models.User{}, fmt.Errorf("profile request: %w", err)
	}
	return user, nil
}

// ListProducts implements [ServerAdapter]. Zero filter fields are not sent.
func (h *httpServerAdapter) ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error) {
	var page models.ProductPage
	if err := h.getJSON(ctx, "/api/products", productQuery(filter), &page); err != nil {
		return models.ProductPage{}, fmt.Errorf("list products request: %w", err)
	}
	return page, nil
}

func (h *httpServerAdapter) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	var product models.Product
	if err := h.getJSON(ctx, "/api/products/"+strconv.FormatInt(productID, 10), nil, &product); err != nil {
		return models.Product{}, fmt.Errorf("get product request: %w", err)
	}
	return product, nil
}

func (h *httpServerAdapter) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := h.getJSON(ctx, "/api/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories request: %w", err)
	}
	return categories, nil
}

func (h *httpServerAdapter) GetCart(ctx context.Context) (models.CartView, error) {
	var view models.CartView
	if err := h.getJSON(ctx, "/api/cart", nil, &view); err != nil {
		return models.CartView{}, fmt.Errorf("get cart request: %w", err)
	}
	return view, nil
}

func (h *httpServerAdapter) AddCartItem(ctx context.Context, item models.CartItemRequest) (models.CartView, error) {
	var view models.CartView

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		SetResult(&view).
		Post("/api/cart/items")
	if err != nil {
		return models.CartView{}, fmt.Errorf("add cart item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CartView{}, err
	}
	return view, nil
}

func (h *httpServerAdapter) SetCartItem(ctx context.Context, productID int64, quantity int) (models.CartView, error) {
	var view models.CartView

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CartItemRequest{ProductID: productID, Quantity: quantity}).
		SetResult(&view).
		Put("/api/cart/items/" + strconv.FormatInt(productID, 10))
	if err != nil {
		return models.CartView{}, fmt.Errorf("set cart item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CartView{}, err
	}
	return view, nil
}

func (h *httpServerAdapter) RemoveCartItem(ctx context.Context, productID int64) (models.CartView, error) {
	var view models.CartView

	resp, err := h.authedRequest(ctx).
		SetResult(&view).
		Delete("/api/cart/items/" + strconv.FormatInt(productID, 10))
	if err != nil {
		return models.CartView{}, fmt.Errorf("remove cart item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CartView{}, err
	}
	return view, nil
}

// MergeCart implements [ServerAdapter]. It signs items with the shared HMAC
// key and POSTs them to /api/cart/merge.
func (h *httpServerAdapter) MergeCart(ctx context.Context, items []models.CartItem) (models.CartView, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	req := models.MergeCartRequest{Items: items, Hash: computeTransportHash(items)}
	h.logger.Debug().Str("func", "httpServerAdapter.MergeCart").Int("items", len(items)).Msg("pushing local cart")

	var view models.CartView
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&view).
		Post("/api/cart/merge")
	if err != nil {
		return models.CartView{}, fmt.Errorf("merge cart request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CartView{}, err
	}
	return view, nil
}

func (h *httpServerAdapter) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	var order models.Order

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&order).
		Post("/api/orders/checkout")
	if err != nil {
		return models.Order{}, fmt.Errorf("checkout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (h *httpServerAdapter) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := h.getJSON(ctx, "/api/orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders request: %w", err)
	}
	return orders, nil
}

func (h *httpServerAdapter) CancelOrder(ctx context.Context, orderID int64) (models.Order, error) {
	var order models.Order

	resp, err := h.authedRequest(ctx).
		SetResult(&order).
		Post("/api/orders/" + strconv.FormatInt(orderID, 10) + "/cancel")
	if err != nil {
		return models.Order{}, fmt.Errorf("cancel order request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (h *httpServerAdapter) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	req := h.authedRequest(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return err
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func productQuery(filter models.ProductFilter) url.Values {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", string(filter.Type))
	}
	if filter.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(filter.CategoryID, 10))
	}
	if filter.Search != "" {
		q.Set("q", filter.Search)
	}
	if filter.MinPriceCents > 0 {
		q.Set("min_price", strconv.FormatInt(filter.MinPriceCents, 10))
	}
	if filter.MaxPriceCents > 0 {
		q.Set("max_price", strconv.FormatInt(filter.MaxPriceCents, 10))
	}
	if filter.FeaturedOnly {
		q.Set("featured", "true")
	}
	if filter.InStockOnly {
		q.Set("in_stock", "true")
	}
	if filter.Sort != "" {
		q.Set("sort", string(filter.Sort))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}
	return q
}

func computeTransportHash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return utils.HashHex(payload)
}

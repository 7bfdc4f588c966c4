package guestcart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError 服务端返回的错误
type APIError struct {
	HTTPStatus int
	ErrorCode  string
	Message    string
	Blocked    bool
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%d %s: %s", e.HTTPStatus, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.HTTPStatus, e.Message)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	ErrorCode  string          `json:"error_code"`
	Data       json.RawMessage `json:"data"`
}

// CartLine 服务端购物车行
type CartLine struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"productname"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

// APIClient 店铺 REST 接口客户端，实现 CartClient 与 CartRefresher
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
	cart    []CartLine
}

// NewAPIClient 创建客户端
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken 设置 Bearer Token
func (c *APIClient) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// Login 登录并保存 Token
func (c *APIClient) Login(ctx context.Context, email, password string) error {
	var data struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &data); err != nil {
		return err
	}
	if data.Token == "" {
		return fmt.Errorf("login response missing token")
	}
	c.SetToken(data.Token)
	return nil
}

// AddItem 实现 CartClient：POST /carts/:productId
func (c *APIClient) AddItem(ctx context.Context, productID uint, quantity int) error {
	path := fmt.Sprintf("/carts/%d", productID)
	return c.do(ctx, http.MethodPost, path, map[string]int{"quantity": quantity}, nil)
}

// RefreshCart 实现 CartRefresher：GET /carts
func (c *APIClient) RefreshCart(ctx context.Context) error {
	var lines []CartLine
	if err := c.do(ctx, http.MethodGet, "/carts", nil, &lines); err != nil {
		return err
	}
	c.cart = lines
	return nil
}

// Cart 最近一次拉取的服务端购物车
func (c *APIClient) Cart() []CartLine {
	return c.cart
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s %s response failed: %w", method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{HTTPStatus: resp.StatusCode, ErrorCode: env.ErrorCode, Message: env.Msg}
		var flags struct {
			IsBlocked bool `json:"is_blocked"`
		}
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &flags) == nil {
			apiErr.Blocked = flags.IsBlocked
		}
		return apiErr
	}
	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("decode %s %s data failed: %w", method, path, err)
		}
	}
	return nil
}

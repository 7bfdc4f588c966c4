package guestcart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAPIClientAddItemAndRefresh(t *testing.T) {
	var gotAuth, gotPath string
	var gotQuantity int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/carts/9":
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			var body map[string]int
			_ = json.NewDecoder(r.Body).Decode(&body)
			gotQuantity = body["quantity"]
			_, _ = w.Write([]byte(`{"status_code":0,"msg":"success","data":{"product_id":9,"quantity":3}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/carts":
			_, _ = w.Write([]byte(`{"status_code":0,"msg":"success","data":[{"product_id":9,"productname":"Pen","price":"1.00","quantity":3}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status_code":404,"msg":"not found"}`))
		}
	}))
	defer server.Close()

	client := NewAPIClient(server.URL+"/", time.Second)
	client.SetToken("abc")
	if err := client.AddItem(context.Background(), 9, 3); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if gotAuth != "Bearer abc" || gotPath != "/carts/9" || gotQuantity != 3 {
		t.Fatalf("unexpected request auth=%q path=%q qty=%d", gotAuth, gotPath, gotQuantity)
	}
	if err := client.RefreshCart(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(client.Cart()) != 1 || client.Cart()[0].ProductName != "Pen" {
		t.Fatalf("unexpected cart: %+v", client.Cart())
	}
}

func TestAPIClientReportsBlockedAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"status_code":403,"error_code":"account_blocked","msg":"contact the administrator","data":{"is_blocked":true}}`))
	}))
	defer server.Close()

	err := NewAPIClient(server.URL, time.Second).AddItem(context.Background(), 1, 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !apiErr.Blocked || apiErr.HTTPStatus != http.StatusForbidden || apiErr.ErrorCode != "account_blocked" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

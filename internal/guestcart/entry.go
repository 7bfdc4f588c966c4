package guestcart

import (
	"github.com/storefront-next/internal/models"
)

// Entry 游客购物车条目，仅保存在客户端本地
type Entry struct {
	ProductID   uint         `json:"product_id"`
	ProductName string       `json:"productname"`
	Price       models.Money `json:"price"`
	ImageURL    string       `json:"image_url"`
	Quantity    int          `json:"quantity"`
}

// SkippedEntry 合并失败被跳过的条目
type SkippedEntry struct {
	Entry  Entry  `json:"entry"`
	Reason string `json:"reason"`
}

// Outcome 合并结果
type Outcome struct {
	Merged  []Entry        `json:"merged"`
	Skipped []SkippedEntry `json:"skipped"`
}

// mergeEntry 同一商品合并数量，返回新的列表
func mergeEntry(entries []Entry, entry Entry) []Entry {
	for i := range entries {
		if entries[i].ProductID == entry.ProductID {
			entries[i].Quantity += entry.Quantity
			if entry.ProductName != "" {
				entries[i].ProductName = entry.ProductName
			}
			if entry.ImageURL != "" {
				entries[i].ImageURL = entry.ImageURL
			}
			if !entry.Price.IsZero() {
				entries[i].Price = entry.Price
			}
			return entries
		}
	}
	return append(entries, entry)
}

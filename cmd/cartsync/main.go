package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/storefront-next/internal/guestcart"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
)

const usage = `用法: cartsync [选项] <命令> [参数]

命令:
  add <product_id> <quantity> [name] [price]   游客加购，同一商品累加数量
  remove <product_id>                          删除本地购物车中的商品
  clear                                        清空本地购物车
  list                                         查看本地购物车
  login <email> <password>                     登录并合并本地购物车到服务端

选项:
`

func main() {
	var (
		dir     string
		baseURL string
		timeout time.Duration
		verbose bool
	)
	flag.StringVar(&dir, "dir", defaultStoreDir(), "本地购物车目录")
	flag.StringVar(&baseURL, "api", envOr("STOREFRONT_API", "http://127.0.0.1:8080"), "店铺 API 地址")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "单次请求超时")
	flag.BoolVar(&verbose, "v", false, "输出调试日志")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	mode := "release"
	if verbose {
		mode = "debug"
	}
	logger.Init(mode, logger.Options{Dir: dir, Filename: "cartsync.log"})
	defer logger.Sync()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	store, err := guestcart.NewFileStore(dir)
	if err != nil {
		fail("打开本地购物车失败: %v", err)
	}

	switch args[0] {
	case "add":
		runAdd(store, args[1:])
	case "remove":
		runRemove(store, args[1:])
	case "clear":
		if err := store.Clear(); err != nil {
			fail("清空失败: %v", err)
		}
		fmt.Println("local cart cleared")
	case "list":
		entries, err := store.Load()
		if err != nil {
			fail("读取失败: %v", err)
		}
		printJSON(entries)
	case "login":
		runLogin(store, guestcart.NewAPIClient(baseURL, timeout), args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runAdd(store guestcart.Store, args []string) {
	if len(args) < 2 {
		fail("add 需要 product_id 与 quantity")
	}
	productID := parseID(args[0])
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fail("quantity 无效: %s", args[1])
	}
	entry := guestcart.Entry{ProductID: productID, Quantity: quantity}
	if len(args) > 2 {
		entry.ProductName = args[2]
	}
	if len(args) > 3 {
		price, err := models.NewMoneyFromString(args[3])
		if err != nil {
			fail("price 无效: %s", args[3])
		}
		entry.Price = price
	}
	entries, err := guestcart.Add(store, entry)
	if err != nil {
		fail("加购失败: %v", err)
	}
	printJSON(entries)
}

func runRemove(store guestcart.Store, args []string) {
	if len(args) < 1 {
		fail("remove 需要 product_id")
	}
	entries, err := guestcart.Remove(store, parseID(args[0]))
	if err != nil {
		fail("删除失败: %v", err)
	}
	printJSON(entries)
}

func runLogin(store guestcart.Store, client *guestcart.APIClient, args []string) {
	if len(args) < 2 {
		fail("login 需要 email 与 password")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := client.Login(ctx, args[0], args[1]); err != nil {
		// 登录失败时保留本地购物车
		fail("登录失败: %v", err)
	}
	outcome, err := guestcart.NewReconciler(store, client).Reconcile(ctx)
	if err != nil {
		logger.Warnw("cartsync_reconcile_failed", "error", err)
	}
	printJSON(map[string]interface{}{
		"merged":  outcome.Merged,
		"skipped": outcome.Skipped,
		"cart":    client.Cart(),
	})
}

func parseID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		fail("product_id 无效: %s", raw)
	}
	return uint(id)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail("输出失败: %v", err)
	}
	fmt.Println(string(out))
}

func defaultStoreDir() string {
	if dir := os.Getenv("STOREFRONT_CART_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// Poshmark 会拒绝不像浏览器的请求，UA 和 Accept 必须带上
const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:115.0) Gecko/20100101 Firefox/115.0"
	browserAccept    = "application/json,text/*;q=0.99"
)

// NewBrowserClient 创建一个伪装成浏览器的 Resty 客户端
// 它是抓取侧统一的网络请求入口
// 超时给到 1 小时：闭橱商品多的时候 Poshmark 会限速，整页返回可能非常慢，
// 宁可慢等也不要误报超时
func NewBrowserClient() *resty.Client {
	return resty.New().
		SetTimeout(1 * time.Hour).
		SetHeader("User-Agent", browserUserAgent).
		SetHeader("Accept", browserAccept)
}

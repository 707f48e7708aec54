package poshmark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/jakubCF/Boutique/pkg/utils"
)

// 闭橱列表接口的版本参数，Poshmark 老版本参数会被拒
const (
	appVersion = "2.55"
	pmVersion  = "2025.20.1"

	// 单页条数；每个周期只取第一页（最新在前），翻页是明确的非目标
	pageCount = 48
)

// Client Poshmark 闭橱列表客户端
type Client struct {
	http *resty.Client
}

// NewClient 创建客户端，底层走统一的浏览器伪装 Resty 入口
func NewClient() *Client {
	return &Client{http: utils.NewBrowserClient()}
}

// filterRequest 列表接口的 request 查询参数（JSON 序列化后整个塞进一个参数）
type filterRequest struct {
	Filters    filterBody `json:"filters"`
	SortBy     string     `json:"sort_by"`
	Experience string     `json:"experience"`
	Count      int        `json:"count"`
}

type filterBody struct {
	Department      string   `json:"department"`
	InventoryStatus []string `json:"inventory_status"`
}

// FetchClosetListings 抓取卖家闭橱的在售挂牌（第一页，最新在前）
// baseURL / user 任一为空立即返回 ErrConfigMissing，绝不拼残缺 URL 发请求
func (c *Client) FetchClosetListings(ctx context.Context, baseURL, user string) ([]RawListing, error) {
	if baseURL == "" || user == "" {
		return nil, &FetchError{
			Kind: ErrConfigMissing,
			Err:  errors.New("posh_url / posh_user 未配置"),
		}
	}

	reqFilter, err := json.Marshal(filterRequest{
		Filters: filterBody{
			Department:      "All",
			InventoryStatus: []string{"available"},
		},
		SortBy:     "added_desc",
		Experience: "all",
		Count:      pageCount,
	})
	if err != nil {
		return nil, &FetchError{Kind: ErrUnexpectedShape, Err: err}
	}

	endpoint := fmt.Sprintf("%s/vm-rest/users/%s/posts/filtered", baseURL, user)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"app_version": appVersion,
			"pm_version":  pmVersion,
			"summarize":   "true",
			"request":     string(reqFilter),
		}).
		Get(endpoint)
	if err != nil {
		return nil, &FetchError{Kind: ErrTransport, Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &FetchError{
			Kind: ErrTransport,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode()),
		}
	}

	// data 必须是数组，别的形状一律算硬失败，不做部分解析
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &probe); err != nil {
		return nil, &FetchError{Kind: ErrUnexpectedShape, Err: err}
	}
	raw := bytes.TrimSpace(probe.Data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, &FetchError{
			Kind: ErrUnexpectedShape,
			Err:  errors.New("response data field is missing or not an array"),
		}
	}

	var listings []RawListing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, &FetchError{Kind: ErrUnexpectedShape, Err: err}
	}

	return listings, nil
}

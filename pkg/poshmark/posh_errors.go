package poshmark

import "fmt"

// ==================== 错误分类 ====================

// ErrKind 抓取失败分类，测试和日志按 kind 断言，不靠字符串匹配
type ErrKind string

const (
	// ErrConfigMissing 必要配置为空，请求根本没有发出去
	ErrConfigMissing ErrKind = "config_missing"
	// ErrTransport 网络层失败（超时、连接失败、非 200 状态码）
	ErrTransport ErrKind = "transport"
	// ErrUnexpectedShape 响应能收到但 data 不是挂牌数组
	ErrUnexpectedShape ErrKind = "unexpected_shape"
)

// FetchError 带分类的抓取错误
type FetchError struct {
	Kind ErrKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("poshmark fetch failed: %s", e.Kind)
	}
	return fmt.Sprintf("poshmark fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

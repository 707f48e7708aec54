package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jakubCF/Boutique/internal/model"
	"github.com/jakubCF/Boutique/internal/repository"
	"github.com/jakubCF/Boutique/pkg/poshmark"
)

// ==================== 配置键与默认值 ====================

const (
	SettingPoshURL        = "posh_url"
	SettingPoshUser       = "posh_user"
	SettingScrapeInterval = "scrape_interval"

	DefaultPoshURL = "https://poshmark.com"
	// DefaultIntervalHours 抓取周期默认间隔（小时），配置缺失或周期失败时兜底
	DefaultIntervalHours = 12
)

// DefaultSettings 首次启动播种的默认配置
// posh_user 默认为空是合法的"未配置"状态：周期会快速失败并按默认间隔重试
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingPoshURL:        DefaultPoshURL,
		SettingPoshUser:       "",
		SettingScrapeInterval: fmt.Sprintf("%d", DefaultIntervalHours),
	}
}

// ==================== 错误定义 ====================

// PersistenceError 落库失败，Stage 标记是哪条路径挂了
// 插入和 relist 更新互相独立：一条失败不拦另一条
type PersistenceError struct {
	Stage string // settings / lookup / insert / relist
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed at %s: %v", e.Stage, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ==================== 周期结果 ====================

// CycleResult 一个抓取周期的统计
type CycleResult struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Relisted int `json:"relisted"`
}

// ==================== ScraperService 抓取同步核心 ====================

// ScraperService 负责一个完整的同步周期：
// 抓取闭橱列表 -> 映射成本地商品 -> 双键识别新增/relist -> 落库
//
// 双键识别的原因：卖家 relist 之后 Poshmark 会分配新的挂牌 ID（web_url 变了），
// 但 root_ancestor_post_id 不变。没有兜底键的话每次 relist 都会被当成新商品，
// 库存虚增，而且商品积累的本地数据（收纳箱、进价、售出记录）全丢
type ScraperService struct {
	itemRepo    repository.ItemRepository
	settingRepo repository.SettingRepository
	feed        *poshmark.Client
}

// NewScraperService 创建抓取同步服务
func NewScraperService(
	itemRepo repository.ItemRepository,
	settingRepo repository.SettingRepository,
	feed *poshmark.Client,
) *ScraperService {
	return &ScraperService{
		itemRepo:    itemRepo,
		settingRepo: settingRepo,
		feed:        feed,
	}
}

// RunCycle 执行一个完整同步周期
// 任何阶段失败都只影响本周期，错误带类型返回给调度层记日志
func (s *ScraperService) RunCycle(ctx context.Context) (*CycleResult, error) {
	settings, err := s.settingRepo.Map(ctx)
	if err != nil {
		return nil, &PersistenceError{Stage: "settings", Err: err}
	}

	poshURL := settings[SettingPoshURL]
	poshUser := settings[SettingPoshUser]

	raw, err := s.feed.FetchClosetListings(ctx, poshURL, poshUser)
	if err != nil {
		return nil, err
	}
	log.Printf("[Scraper] 成功抓取 %d 条挂牌", len(raw))

	scraped := s.buildItems(raw, poshURL, poshUser)

	newItems, relisted, err := s.classify(ctx, scraped)
	if err != nil {
		return nil, err
	}

	result, err := s.apply(ctx, newItems, relisted)
	result.Fetched = len(raw)
	return result, err
}

// ==================== 映射 ====================

// buildItems 把原始挂牌映射成本地商品候选
// 纯映射、永不失败：可选字段解析不了就置空，挂牌本身照常保留
func (s *ScraperService) buildItems(raw []poshmark.RawListing, poshURL, poshUser string) []model.Item {
	now := time.Now()
	items := make([]model.Item, 0, len(raw))

	for _, l := range raw {
		// web_url 由配置的站点地址 + 挂牌 ID 派生，不从两处冗余存储
		webURL := poshURL + "/listing/" + l.ID

		user := l.PoshUser
		if user == "" {
			user = poshUser
		}

		items = append(items, model.Item{
			Name:                   l.Title,
			WebURL:                 &webURL,
			PoshRootAncestorPostID: strPtr(l.RootAncestorPostID),
			ListingPrice:           l.Price.Val,
			Brand:                  strPtr(l.Brand),
			PoshCategory:           strPtr(l.Category),
			PoshPictureURL:         strPtr(l.PictureURL),
			PoshCreatedAt:          poshmark.ParseListingTime(l.CreatedAt),
			PoshSize:               strPtr(l.Size),
			PoshUser:               strPtr(user),
			Sysdate:                &now,
		})
	}
	return items
}

// ==================== 识别 ====================

// classify 双键识别：对照现有目录把抓到的挂牌分成 新增 / relist / 不变
//   - web_url 命中     -> 不变，跳过
//   - 根 ID 非空且命中  -> relist，旧记录换了挂牌页
//   - 两键都没命中      -> 新商品
//
// 现有记录只查一次（批量 IN 查询），不逐条打库
func (s *ScraperService) classify(ctx context.Context, scraped []model.Item) (newItems, relisted []model.Item, err error) {
	urls := make([]string, 0, len(scraped))
	roots := make([]string, 0, len(scraped))
	for _, it := range scraped {
		urls = append(urls, *it.WebURL)
		if it.PoshRootAncestorPostID != nil {
			roots = append(roots, *it.PoshRootAncestorPostID)
		}
	}

	existing, err := s.itemRepo.FindByIdentity(ctx, urls, roots)
	if err != nil {
		return nil, nil, &PersistenceError{Stage: "lookup", Err: err}
	}

	existingURLs := make(map[string]struct{}, len(existing))
	existingRoots := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		if it.WebURL != nil {
			existingURLs[*it.WebURL] = struct{}{}
		}
		if it.PoshRootAncestorPostID != nil && *it.PoshRootAncestorPostID != "" {
			existingRoots[*it.PoshRootAncestorPostID] = struct{}{}
		}
	}

	for _, it := range scraped {
		if _, ok := existingURLs[*it.WebURL]; ok {
			// 不变：这个挂牌页已经是当前记录
			continue
		}
		rootHit := false
		if it.PoshRootAncestorPostID != nil && *it.PoshRootAncestorPostID != "" {
			_, rootHit = existingRoots[*it.PoshRootAncestorPostID]
		}
		if rootHit {
			relisted = append(relisted, it)
		} else {
			newItems = append(newItems, it)
		}
	}
	return newItems, relisted, nil
}

// ==================== 落库 ====================

// apply 把识别结果写进目录
// 两条路径互相独立：插入失败不影响 relist 更新，反之亦然，
// 错误分别包上 Stage 一起返回
func (s *ScraperService) apply(ctx context.Context, newItems, relisted []model.Item) (*CycleResult, error) {
	result := &CycleResult{}
	var insertErr, relistErr error

	if len(newItems) > 0 {
		n, err := s.itemRepo.BulkInsert(ctx, newItems)
		if err != nil {
			insertErr = &PersistenceError{Stage: "insert", Err: err}
			log.Printf("[Scraper] 新商品插入失败: %v", err)
		} else {
			result.Inserted = int(n)
			log.Printf("[Scraper] %d 个新商品已插入", n)
		}
	} else {
		log.Println("[Scraper] 没有新商品需要插入")
	}

	if len(relisted) > 0 {
		log.Printf("[Scraper] %d 个 relist 商品待更新", len(relisted))
		for i := range relisted {
			it := &relisted[i]
			// 按根 ID 过滤更新：同根的记录（理论上只有一条）全部更新，
			// 不挑单条主键，避免 root 重复时漏更新
			_, err := s.itemRepo.UpdateByRootID(ctx, *it.PoshRootAncestorPostID, relistFields(it))
			if err != nil {
				if relistErr == nil {
					relistErr = &PersistenceError{Stage: "relist", Err: err}
				}
				log.Printf("[Scraper] relist 更新失败 (root=%s): %v", *it.PoshRootAncestorPostID, err)
				continue
			}
			result.Relisted++
		}
	} else {
		log.Println("[Scraper] 没有 relist 商品需要更新")
	}

	return result, errors.Join(insertErr, relistErr)
}

// relistFields relist 更新只动同步内容字段
// 本地运营字段（bin_id, sold, buy_price, item_desc, purchase_date, sold_date, made_in）
// 绝不出现在这里
func relistFields(it *model.Item) map[string]interface{} {
	return map[string]interface{}{
		"web_url":          it.WebURL,
		"name":             it.Name,
		"posh_size":        it.PoshSize,
		"brand":            it.Brand,
		"posh_category":    it.PoshCategory,
		"posh_picture_url": it.PoshPictureURL,
		"listing_price":    it.ListingPrice,
		"posh_created_at":  it.PoshCreatedAt,
		"posh_user":        it.PoshUser,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jakubCF/Boutique/internal/model"
	"github.com/jakubCF/Boutique/internal/repository"
	"github.com/jakubCF/Boutique/pkg/poshmark"
)

// ==================== 测试辅助 ====================

// fakeCloset 可控的假 Poshmark 闭橱接口
type fakeCloset struct {
	mu     sync.Mutex
	body   string
	status int
	calls  int
}

func (f *fakeCloset) set(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

func (f *fakeCloset) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCloset) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	w.Write([]byte(f.body))
}

func setupScraperTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Bin{}, &model.Item{}, &model.Setting{})
	return db
}

// setupScraperTest 组装一套真实栈：sqlite + 真实仓储 + 假闭橱接口
func setupScraperTest(t *testing.T) (*gorm.DB, *ScraperService, *fakeCloset) {
	db := setupScraperTestDB(t)

	feed := &fakeCloset{status: 200, body: `{"data": []}`}
	srv := httptest.NewServer(feed)
	t.Cleanup(srv.Close)

	settingRepo := repository.NewSettingRepository(db)
	ctx := context.Background()
	settingRepo.Upsert(ctx, SettingPoshURL, srv.URL)
	settingRepo.Upsert(ctx, SettingPoshUser, "tester")
	settingRepo.Upsert(ctx, SettingScrapeInterval, "12")

	svc := NewScraperService(repository.NewItemRepository(db), settingRepo, poshmark.NewClient())
	return db, svc, feed
}

// ==================== 单元测试 ====================

func TestScraperService_SyncCycle(t *testing.T) {
	db, svc, feed := setupScraperTest(t)
	ctx := context.Background()

	feed.set(200, `{"data": [{
		"id": "abc",
		"title": "Blue Jacket",
		"size": "M",
		"brand": "Gap",
		"price": 40,
		"root_ancestor_post_id": "root1",
		"created_at": "2026-05-01T10:00:00-04:00"
	}]}`)

	// 第一轮：插入新商品
	result, err := svc.RunCycle(ctx)
	if err != nil {
		t.Fatalf("周期失败: %v", err)
	}
	if result.Fetched != 1 || result.Inserted != 1 || result.Relisted != 0 {
		t.Fatalf("第一轮统计不对: %+v", result)
	}

	var item model.Item
	if err := db.First(&item).Error; err != nil {
		t.Fatalf("读取商品失败: %v", err)
	}
	if item.Name != "Blue Jacket" {
		t.Fatalf("商品名不对: %q", item.Name)
	}
	if item.WebURL == nil || !strings.HasSuffix(*item.WebURL, "/listing/abc") {
		t.Fatalf("web_url 不对: %v", item.WebURL)
	}
	if item.ListingPrice == nil || *item.ListingPrice != 40 {
		t.Fatalf("挂牌价不对: %v", item.ListingPrice)
	}
	if item.PoshRootAncestorPostID == nil || *item.PoshRootAncestorPostID != "root1" {
		t.Fatalf("根 ID 不对: %v", item.PoshRootAncestorPostID)
	}
	// 新商品的本地字段必须是默认值
	if item.BinID != nil || item.Sold || item.BuyPrice != nil || item.ItemDesc != nil {
		t.Fatalf("新商品本地字段应为默认值: %+v", item)
	}
	if item.PoshUser == nil || *item.PoshUser != "tester" {
		t.Fatalf("posh_user 应回落到配置的账号: %v", item.PoshUser)
	}

	// 第二轮同样的数据：幂等，什么都不发生
	result, err = svc.RunCycle(ctx)
	if err != nil {
		t.Fatalf("第二轮失败: %v", err)
	}
	if result.Inserted != 0 || result.Relisted != 0 {
		t.Fatalf("重复同步不应有写入: %+v", result)
	}
	var total int64
	db.Model(&model.Item{}).Count(&total)
	if total != 1 {
		t.Fatalf("重复同步产生了重复行: %d", total)
	}

	// 卖家 relist：新挂牌 ID，同一个根 ID，价格改了
	feed.set(200, `{"data": [{
		"id": "xyz",
		"title": "Blue Jacket",
		"size": "M",
		"brand": "Gap",
		"price": 35,
		"root_ancestor_post_id": "root1",
		"created_at": "2026-06-01T10:00:00-04:00"
	}]}`)

	result, err = svc.RunCycle(ctx)
	if err != nil {
		t.Fatalf("relist 周期失败: %v", err)
	}
	if result.Inserted != 0 || result.Relisted != 1 {
		t.Fatalf("relist 统计不对: %+v", result)
	}

	var after model.Item
	db.First(&after)
	if after.ID != item.ID {
		t.Fatalf("relist 不应产生新行: 旧 ID %d, 新 ID %d", item.ID, after.ID)
	}
	if after.WebURL == nil || *after.WebURL == *item.WebURL {
		t.Fatalf("relist 后 web_url 应指向新挂牌页: %v", after.WebURL)
	}
	if after.ListingPrice == nil || *after.ListingPrice != 35 {
		t.Fatalf("relist 后挂牌价未更新: %v", after.ListingPrice)
	}
	db.Model(&model.Item{}).Count(&total)
	if total != 1 {
		t.Fatalf("relist 产生了重复行: %d", total)
	}
}

func TestScraperService_RelistPreservesLocalEdits(t *testing.T) {
	db, svc, feed := setupScraperTest(t)
	ctx := context.Background()

	feed.set(200, `{"data": [{
		"id": "abc", "title": "Denim Skirt", "price": 28,
		"root_ancestor_post_id": "root9"
	}]}`)
	if _, err := svc.RunCycle(ctx); err != nil {
		t.Fatalf("初始同步失败: %v", err)
	}

	// 运营在本地补了收纳箱、进价、描述
	bin := model.Bin{Name: "Shelf A"}
	db.Create(&bin)
	buyPrice := 8.5
	desc := "small stain on hem"
	db.Model(&model.Item{}).Where("posh_root_ancestor_post_id = ?", "root9").
		Updates(map[string]interface{}{
			"bin_id":    bin.ID,
			"buy_price": buyPrice,
			"item_desc": desc,
			"sold":      false,
		})

	// relist 之后本地字段必须原样保留
	feed.set(200, `{"data": [{
		"id": "def", "title": "Denim Skirt", "price": 22,
		"root_ancestor_post_id": "root9"
	}]}`)
	result, err := svc.RunCycle(ctx)
	if err != nil {
		t.Fatalf("relist 周期失败: %v", err)
	}
	if result.Relisted != 1 {
		t.Fatalf("relist 统计不对: %+v", result)
	}

	var item model.Item
	db.First(&item)
	if item.BinID == nil || *item.BinID != bin.ID {
		t.Fatalf("relist 丢了收纳箱关联: %v", item.BinID)
	}
	if item.BuyPrice == nil || *item.BuyPrice != 8.5 {
		t.Fatalf("relist 丢了进价: %v", item.BuyPrice)
	}
	if item.ItemDesc == nil || *item.ItemDesc != "small stain on hem" {
		t.Fatalf("relist 丢了描述: %v", item.ItemDesc)
	}
	if item.ListingPrice == nil || *item.ListingPrice != 22 {
		t.Fatalf("relist 没更新挂牌价: %v", item.ListingPrice)
	}
}

func TestScraperService_EmptyRootNeverMatchesAsRelist(t *testing.T) {
	db, svc, feed := setupScraperTest(t)
	ctx := context.Background()

	// 现有商品根 ID 为空（老数据 / 接口没返回）
	feed.set(200, `{"data": [{"id": "aaa", "title": "No Root A", "price": 10}]}`)
	if _, err := svc.RunCycle(ctx); err != nil {
		t.Fatalf("初始同步失败: %v", err)
	}

	// 另一条根 ID 同样为空的挂牌：必须按新商品插入，不能跟空根互相匹配
	feed.set(200, `{"data": [{"id": "bbb", "title": "No Root B", "price": 11}]}`)
	result, err := svc.RunCycle(ctx)
	if err != nil {
		t.Fatalf("第二轮失败: %v", err)
	}
	if result.Inserted != 1 || result.Relisted != 0 {
		t.Fatalf("空根挂牌应按新商品处理: %+v", result)
	}

	var total int64
	db.Model(&model.Item{}).Count(&total)
	if total != 2 {
		t.Fatalf("期望 2 行，实际 %d", total)
	}
}

func TestScraperService_TolerantFieldParsing(t *testing.T) {
	db, svc, feed := setupScraperTest(t)
	ctx := context.Background()

	// 价格是垃圾字符串、时间戳解析不了：字段置空，挂牌照常入库
	feed.set(200, `{"data": [{
		"id": "odd",
		"title": "Odd Listing",
		"price": "not-a-number",
		"created_at": "whenever"
	}]}`)

	result, err := svc.RunCycle(ctx)
	if err != nil {
		t.Fatalf("周期失败: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("容错字段不应拦下整条挂牌: %+v", result)
	}

	var item model.Item
	db.First(&item)
	if item.ListingPrice != nil || item.PoshCreatedAt != nil {
		t.Fatalf("解析不了的字段应置空: price=%v created_at=%v", item.ListingPrice, item.PoshCreatedAt)
	}
}

func TestScraperService_ConfigMissing(t *testing.T) {
	db, svc, feed := setupScraperTest(t)
	ctx := context.Background()

	// posh_user 清空：周期必须快速失败，一个请求都不发
	repository.NewSettingRepository(db).Upsert(ctx, SettingPoshUser, "")

	_, err := svc.RunCycle(ctx)
	var fe *poshmark.FetchError
	if !errors.As(err, &fe) || fe.Kind != poshmark.ErrConfigMissing {
		t.Fatalf("期望 ErrConfigMissing，拿到: %v", err)
	}
	if feed.callCount() != 0 {
		t.Fatalf("配置缺失时不应发出请求，实际 %d 次", feed.callCount())
	}
}

func TestScraperService_UnexpectedShape(t *testing.T) {
	_, svc, feed := setupScraperTest(t)

	feed.set(200, `{"data": {"looks": "wrong"}}`)

	_, err := svc.RunCycle(context.Background())
	var fe *poshmark.FetchError
	if !errors.As(err, &fe) || fe.Kind != poshmark.ErrUnexpectedShape {
		t.Fatalf("期望 ErrUnexpectedShape，拿到: %v", err)
	}
}

func TestScraperService_TransportError(t *testing.T) {
	_, svc, feed := setupScraperTest(t)

	feed.set(http.StatusForbidden, `blocked`)

	_, err := svc.RunCycle(context.Background())
	var fe *poshmark.FetchError
	if !errors.As(err, &fe) || fe.Kind != poshmark.ErrTransport {
		t.Fatalf("期望 ErrTransport，拿到: %v", err)
	}
}

// ==================== 部分失败隔离 ====================

// faultItemRepo 故障注入：可以让插入或 relist 更新单独失败
type faultItemRepo struct {
	repository.ItemRepository
	failInsert bool
	failRelist bool
}

func (f *faultItemRepo) BulkInsert(ctx context.Context, items []model.Item) (int64, error) {
	if f.failInsert {
		return 0, errors.New("insert blew up")
	}
	return f.ItemRepository.BulkInsert(ctx, items)
}

func (f *faultItemRepo) UpdateByRootID(ctx context.Context, rootID string, fields map[string]interface{}) (int64, error) {
	if f.failRelist {
		return 0, errors.New("relist blew up")
	}
	return f.ItemRepository.UpdateByRootID(ctx, rootID, fields)
}

// setupFaultScraperTest 同 setupScraperTest，但商品仓储可注入故障
func setupFaultScraperTest(t *testing.T) (*gorm.DB, *faultItemRepo, *ScraperService, *fakeCloset) {
	db := setupScraperTestDB(t)

	feed := &fakeCloset{status: 200, body: `{"data": []}`}
	srv := httptest.NewServer(feed)
	t.Cleanup(srv.Close)

	settingRepo := repository.NewSettingRepository(db)
	ctx := context.Background()
	settingRepo.Upsert(ctx, SettingPoshURL, srv.URL)
	settingRepo.Upsert(ctx, SettingPoshUser, "tester")

	fault := &faultItemRepo{ItemRepository: repository.NewItemRepository(db)}
	svc := NewScraperService(fault, settingRepo, poshmark.NewClient())
	return db, fault, svc, feed
}

func TestScraperService_InsertFailureDoesNotBlockRelist(t *testing.T) {
	db, fault, svc, feed := setupFaultScraperTest(t)
	ctx := context.Background()

	// 先正常落一条，作为 relist 的目标
	feed.set(200, `{"data": [{"id": "old", "title": "Tote", "price": 50, "root_ancestor_post_id": "r1"}]}`)
	if _, err := svc.RunCycle(ctx); err != nil {
		t.Fatalf("初始同步失败: %v", err)
	}

	// 本轮同时有一个新商品和一个 relist，插入路径挂掉
	fault.failInsert = true
	feed.set(200, `{"data": [
		{"id": "new", "title": "Scarf", "price": 15, "root_ancestor_post_id": "r2"},
		{"id": "relist", "title": "Tote", "price": 45, "root_ancestor_post_id": "r1"}
	]}`)

	result, err := svc.RunCycle(ctx)
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Stage != "insert" {
		t.Fatalf("期望 insert 阶段的持久化错误，拿到: %v", err)
	}

	// relist 更新必须照常生效
	if result.Relisted != 1 {
		t.Fatalf("插入失败不应拦住 relist: %+v", result)
	}
	var item model.Item
	db.Where("posh_root_ancestor_post_id = ?", "r1").First(&item)
	if item.ListingPrice == nil || *item.ListingPrice != 45 {
		t.Fatalf("relist 更新没有生效: %v", item.ListingPrice)
	}
}

func TestScraperService_RelistFailureDoesNotBlockInsert(t *testing.T) {
	db, fault, svc, feed := setupFaultScraperTest(t)
	ctx := context.Background()

	feed.set(200, `{"data": [{"id": "old", "title": "Tote", "price": 50, "root_ancestor_post_id": "r1"}]}`)
	if _, err := svc.RunCycle(ctx); err != nil {
		t.Fatalf("初始同步失败: %v", err)
	}

	fault.failRelist = true
	feed.set(200, `{"data": [
		{"id": "new", "title": "Scarf", "price": 15, "root_ancestor_post_id": "r2"},
		{"id": "relist", "title": "Tote", "price": 45, "root_ancestor_post_id": "r1"}
	]}`)

	result, err := svc.RunCycle(ctx)
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Stage != "relist" {
		t.Fatalf("期望 relist 阶段的持久化错误，拿到: %v", err)
	}

	// 新商品插入必须照常生效
	if result.Inserted != 1 {
		t.Fatalf("relist 失败不应拦住插入: %+v", result)
	}
	var total int64
	db.Model(&model.Item{}).Where("posh_root_ancestor_post_id = ?", "r2").Count(&total)
	if total != 1 {
		t.Fatalf("新商品没有入库")
	}
}

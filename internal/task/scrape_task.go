package task

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jakubCF/Boutique/internal/repository"
	"github.com/jakubCF/Boutique/internal/service"
)

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	// ErrCycleRunning 已有周期在跑，手动触发被拒绝（同一时刻只允许一个周期）
	ErrCycleRunning TaskError = "scrape cycle already running"
)

// ==================== ScrapeTask 抓取调度任务 ====================

// ScrapeTask 驱动抓取同步周期的常驻调度器
// 状态机只有两态：睡眠 / 周期进行中，永不重叠
//   - 启动立即跑一轮，之后按 scrape_interval 睡眠
//   - 间隔每次入睡前重新读配置，运营改了间隔下次醒来就生效
//   - 周期失败时下一轮睡眠退回固定默认间隔，防止配置错成 0 之后
//     对 Poshmark 打出紧循环
//
// 周期内的任何错误只记日志，绝不让调度器或进程退出
type ScrapeTask struct {
	scraperSvc  *service.ScraperService
	settingRepo repository.SettingRepository

	// defaultInterval 周期失败 / 配置坏掉时的兜底间隔
	defaultInterval time.Duration
	// cycleTimeout 单个周期的硬超时（抓取本身超时已经很长，再兜一层）
	cycleTimeout time.Duration

	mu     sync.Mutex // 保证单周期互斥，手动触发也走它
	stopCh chan struct{}
	doneCh chan struct{}

	// baseCtx 在 Stop 时整体取消，进行中的周期直接丢弃不等它跑完
	// （下一轮同步天然幂等，丢弃没有正确性问题）
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewScrapeTask 创建抓取调度任务
func NewScrapeTask(scraperSvc *service.ScraperService, settingRepo repository.SettingRepository) *ScrapeTask {
	ctx, cancel := context.WithCancel(context.Background())
	return &ScrapeTask{
		scraperSvc:      scraperSvc,
		settingRepo:     settingRepo,
		defaultInterval: time.Duration(service.DefaultIntervalHours) * time.Hour,
		cycleTimeout:    2 * time.Hour,
		stopCh:          make(chan struct{}),
		doneCh:          make(chan struct{}),
		baseCtx:         ctx,
		cancel:          cancel,
	}
}

// Start 启动调度循环
func (t *ScrapeTask) Start() {
	go t.loop()
	log.Println("[ScrapeTask] 已启动 (启动即跑一轮，之后按 scrape_interval 调度)")
}

// Stop 停止调度；进行中的周期任其被丢弃，下一轮同步天然幂等
func (t *ScrapeTask) Stop() {
	t.cancel()
	close(t.stopCh)
	<-t.doneCh
	log.Println("[ScrapeTask] 已停止")
}

func (t *ScrapeTask) loop() {
	defer close(t.doneCh)

	err := t.runCycle()

	for {
		interval := t.nextInterval(err)
		timer := time.NewTimer(interval)

		select {
		case <-t.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			err = t.runCycle()
		}
	}
}

// TriggerNow 手动触发一轮同步（异步）
// 已有周期在跑时直接拒绝，不排队
func (t *ScrapeTask) TriggerNow() error {
	if !t.mu.TryLock() {
		return ErrCycleRunning
	}
	go func() {
		defer t.mu.Unlock()
		t.runCycleLocked()
	}()
	return nil
}

func (t *ScrapeTask) runCycle() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runCycleLocked()
}

func (t *ScrapeTask) runCycleLocked() error {
	ctx, cancel := context.WithTimeout(t.baseCtx, t.cycleTimeout)
	defer cancel()

	log.Println("[ScrapeTask] 开始同步周期...")
	result, err := t.scraperSvc.RunCycle(ctx)
	if err != nil {
		log.Printf("[ScrapeTask] 同步周期失败: %v", err)
		return err
	}

	log.Printf("[ScrapeTask] 同步周期完成: 抓取 %d, 新增 %d, relist %d",
		result.Fetched, result.Inserted, result.Relisted)
	return nil
}

// nextInterval 计算下一轮睡眠时长
// 读的是配置的"值"，每次入睡前重读；上一轮失败或配置不可用时退回默认间隔
func (t *ScrapeTask) nextInterval(lastErr error) time.Duration {
	if lastErr != nil {
		log.Printf("[ScrapeTask] 上一轮失败，%v 后重试", t.defaultInterval)
		return t.defaultInterval
	}

	settings, err := t.settingRepo.Map(context.Background())
	if err != nil {
		log.Printf("[ScrapeTask] 读取间隔配置失败，使用默认间隔: %v", err)
		return t.defaultInterval
	}

	hours, err := strconv.Atoi(settings[service.SettingScrapeInterval])
	if err != nil || hours <= 0 {
		log.Printf("[ScrapeTask] scrape_interval 配置无效 (%q)，使用默认间隔",
			settings[service.SettingScrapeInterval])
		return t.defaultInterval
	}

	return time.Duration(hours) * time.Hour
}

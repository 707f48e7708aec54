package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakubCF/Boutique/internal/task"
)

type PoshController struct {
	scrapeTask *task.ScrapeTask
}

func NewPoshController(scrapeTask *task.ScrapeTask) *PoshController {
	return &PoshController{scrapeTask: scrapeTask}
}

// Hello 存活探针
// @Summary Posh 模块存活探针
// @Tags Posh (抓取同步)
// @Produce json
// @Success 200 {object} map[string]string
// @Router /v1/posh [get]
func (c *PoshController) Hello(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Hello Posh"})
}

// TriggerScrape 手动触发一轮同步
// @Summary 手动触发一轮同步
// @Description 异步执行；已有周期在跑时返回 409，不排队
// @Tags Posh (抓取同步)
// @Produce json
// @Success 202 {object} map[string]string "已触发"
// @Failure 409 {object} map[string]string "周期进行中"
// @Router /v1/posh/scrape [post]
func (c *PoshController) TriggerScrape(ctx *gin.Context) {
	if err := c.scrapeTask.TriggerNow(); err != nil {
		if errors.Is(err, task.ErrCycleRunning) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "同步周期进行中，请稍后再试"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"message": "同步已触发"})
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakubCF/Boutique/internal/api/dto"
	"github.com/jakubCF/Boutique/internal/service"
)

type SettingController struct {
	settingSvc *service.SettingService
}

func NewSettingController(settingSvc *service.SettingService) *SettingController {
	return &SettingController{settingSvc: settingSvc}
}

// GetSettings 获取全部配置
// @Summary 获取全部配置
// @Description 抓取相关配置（posh_url / posh_user / scrape_interval）都在这里
// @Tags Setting (配置管理)
// @Produce json
// @Success 200 {object} map[string]interface{} "配置列表"
// @Router /v1/settings [get]
func (c *SettingController) GetSettings(ctx *gin.Context) {
	settings, err := c.settingSvc.GetSettings(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings 批量保存配置
// @Summary 批量保存配置
// @Description 存在则更新，不存在则创建；间隔改动下个抓取周期生效
// @Tags Setting (配置管理)
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsReq true "配置列表"
// @Success 200 {object} map[string]interface{} "保存后的全量配置"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /v1/settings [put]
func (c *SettingController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateSettingsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	settings, err := c.settingSvc.UpdateSettings(ctx.Request.Context(), req.Settings)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "保存成功", "settings": settings})
}

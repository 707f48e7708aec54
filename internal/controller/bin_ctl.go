package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jakubCF/Boutique/internal/api/dto"
	"github.com/jakubCF/Boutique/internal/service"
)

type BinController struct {
	binSvc *service.BinService
}

func NewBinController(binSvc *service.BinService) *BinController {
	return &BinController{binSvc: binSvc}
}

// GetBins 获取收纳箱列表
// @Summary 获取收纳箱列表
// @Description 全部收纳箱，带箱内商品
// @Tags Bin (收纳箱管理)
// @Produce json
// @Success 200 {object} map[string]interface{} "收纳箱列表"
// @Router /v1/bins [get]
func (c *BinController) GetBins(ctx *gin.Context) {
	bins, err := c.binSvc.GetBins(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bins": bins})
}

// GetBin 获取收纳箱详情
// @Summary 获取收纳箱详情
// @Tags Bin (收纳箱管理)
// @Produce json
// @Param id path int true "收纳箱ID"
// @Success 200 {object} map[string]interface{} "收纳箱详情"
// @Failure 404 {object} map[string]string "收纳箱不存在"
// @Router /v1/bins/{id} [get]
func (c *BinController) GetBin(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的收纳箱ID"})
		return
	}

	bin, err := c.binSvc.GetBin(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "收纳箱不存在"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bin": bin})
}

// CreateBin 创建收纳箱
// @Summary 创建收纳箱
// @Tags Bin (收纳箱管理)
// @Accept json
// @Produce json
// @Param request body dto.CreateBinReq true "创建参数"
// @Success 201 {object} map[string]interface{} "新收纳箱"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /v1/bins [post]
func (c *BinController) CreateBin(ctx *gin.Context) {
	var req dto.CreateBinReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	bin, err := c.binSvc.CreateBin(ctx.Request.Context(), req.Name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "创建成功", "bin": bin})
}

// UpdateBinName 重命名收纳箱
// @Summary 重命名收纳箱
// @Tags Bin (收纳箱管理)
// @Accept json
// @Produce json
// @Param id path int true "收纳箱ID"
// @Param request body dto.UpdateBinNameReq true "新名字"
// @Success 200 {object} map[string]interface{} "更新后的收纳箱"
// @Router /v1/bins/{id}/name [put]
func (c *BinController) UpdateBinName(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的收纳箱ID"})
		return
	}

	var req dto.UpdateBinNameReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	bin, err := c.binSvc.UpdateBinName(ctx.Request.Context(), id, req.Name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功", "bin": bin})
}

// UpdateBinIsFull 标记收纳箱装满状态
// @Summary 标记收纳箱装满状态
// @Tags Bin (收纳箱管理)
// @Accept json
// @Produce json
// @Param id path int true "收纳箱ID"
// @Param request body dto.UpdateBinIsFullReq true "is_full 1/0"
// @Success 200 {object} map[string]interface{} "更新后的收纳箱"
// @Router /v1/bins/{id}/full [put]
func (c *BinController) UpdateBinIsFull(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的收纳箱ID"})
		return
	}

	var req dto.UpdateBinIsFullReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	bin, err := c.binSvc.UpdateBinIsFull(ctx.Request.Context(), id, *req.IsFull)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功", "bin": bin})
}

// UpdateBinFields 按字段更新收纳箱
// @Summary 按字段更新收纳箱
// @Tags Bin (收纳箱管理)
// @Accept json
// @Produce json
// @Param id path int true "收纳箱ID"
// @Param request body dto.UpdateBinFieldsReq true "字段更新列表"
// @Success 200 {object} map[string]interface{} "更新后的收纳箱"
// @Failure 400 {object} map[string]string "参数或字段错误"
// @Router /v1/bins/{id} [patch]
func (c *BinController) UpdateBinFields(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的收纳箱ID"})
		return
	}

	var req dto.UpdateBinFieldsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	bin, err := c.binSvc.UpdateBinFields(ctx.Request.Context(), id, req.Updates)
	if err != nil {
		if errors.Is(err, service.ErrInvalidField) || errors.Is(err, service.ErrInvalidValue) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功", "bin": bin})
}

// DeleteBin 删除收纳箱
// @Summary 删除收纳箱
// @Tags Bin (收纳箱管理)
// @Produce json
// @Param id path int true "收纳箱ID"
// @Success 200 {object} map[string]string "删除成功"
// @Router /v1/bins/{id} [delete]
func (c *BinController) DeleteBin(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的收纳箱ID"})
		return
	}

	if err := c.binSvc.DeleteBin(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// AddItemToBin 商品入箱
// @Summary 商品入箱
// @Description 商品换箱直接调这个，旧箱自动脱钩
// @Tags Bin (收纳箱管理)
// @Produce json
// @Param id path int true "收纳箱ID"
// @Param itemId path int true "商品ID"
// @Success 200 {object} map[string]interface{} "更新后的收纳箱"
// @Router /v1/bins/{id}/items/{itemId} [post]
func (c *BinController) AddItemToBin(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的收纳箱ID"})
		return
	}
	itemID, err := strconv.ParseInt(ctx.Param("itemId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	bin, err := c.binSvc.AddItem(ctx.Request.Context(), id, itemID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "已入箱", "bin": bin})
}

// RemoveItemFromBin 商品出箱
// @Summary 商品出箱
// @Tags Bin (收纳箱管理)
// @Produce json
// @Param id path int true "收纳箱ID"
// @Param itemId path int true "商品ID"
// @Success 200 {object} map[string]interface{} "更新后的收纳箱"
// @Router /v1/bins/{id}/items/{itemId} [delete]
func (c *BinController) RemoveItemFromBin(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的收纳箱ID"})
		return
	}
	itemID, err := strconv.ParseInt(ctx.Param("itemId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	bin, err := c.binSvc.RemoveItem(ctx.Request.Context(), id, itemID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "已出箱", "bin": bin})
}

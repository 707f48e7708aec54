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

type ItemController struct {
	itemSvc *service.ItemService
}

func NewItemController(itemSvc *service.ItemService) *ItemController {
	return &ItemController{itemSvc: itemSvc}
}

// GetItems 获取商品列表
// @Summary 获取商品列表
// @Description 全部库存商品，按挂牌时间倒序
// @Tags Item (商品管理)
// @Produce json
// @Success 200 {object} map[string]interface{} "商品列表"
// @Failure 500 {object} map[string]string "服务器错误"
// @Router /v1/items [get]
func (c *ItemController) GetItems(ctx *gin.Context) {
	items, err := c.itemSvc.GetItems(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": items})
}

// GetItem 获取商品详情
// @Summary 获取商品详情
// @Tags Item (商品管理)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{} "商品详情"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Failure 404 {object} map[string]string "商品不存在"
// @Router /v1/items/{id} [get]
func (c *ItemController) GetItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	item, err := c.itemSvc.GetItem(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "商品不存在"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateItem 手动创建商品
// @Summary 手动创建商品
// @Description 只收名字，其余字段后续编辑补齐；和抓取同步互不干扰
// @Tags Item (商品管理)
// @Accept json
// @Produce json
// @Param request body dto.CreateItemReq true "创建参数"
// @Success 201 {object} map[string]interface{} "新商品"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /v1/items [post]
func (c *ItemController) CreateItem(ctx *gin.Context) {
	var req dto.CreateItemReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	item, err := c.itemSvc.CreateItem(ctx.Request.Context(), req.Name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "创建成功", "item": item})
}

// UpdateItemFields 按字段更新商品
// @Summary 按字段更新商品
// @Description 字段走白名单校验，白名单外的字段直接拒绝
// @Tags Item (商品管理)
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param request body dto.UpdateItemFieldsReq true "字段更新列表"
// @Success 200 {object} map[string]interface{} "更新后的商品"
// @Failure 400 {object} map[string]string "参数或字段错误"
// @Router /v1/items/{id} [patch]
func (c *ItemController) UpdateItemFields(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	var req dto.UpdateItemFieldsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	item, err := c.itemSvc.UpdateItemFields(ctx.Request.Context(), id, req.Updates)
	if err != nil {
		if errors.Is(err, service.ErrInvalidField) || errors.Is(err, service.ErrInvalidValue) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功", "item": item})
}

// DeleteItem 删除商品
// @Summary 删除商品
// @Description 只有手动路径能删商品，抓取同步永远不删
// @Tags Item (商品管理)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]string "删除成功"
// @Failure 400 {object} map[string]string "ID格式错误"
// @Router /v1/items/{id} [delete]
func (c *ItemController) DeleteItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的商品ID"})
		return
	}

	if err := c.itemSvc.DeleteItem(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

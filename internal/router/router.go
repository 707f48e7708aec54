package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jakubCF/Boutique/internal/controller"

	_ "github.com/jakubCF/Boutique/docs"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	Item    *controller.ItemController
	Bin     *controller.BinController
	Setting *controller.SettingController
	Posh    *controller.PoshController
}

// SetupRouter 注册所有路由
func SetupRouter(c *Controllers) *gin.Engine {
	r := gin.Default()

	// Swagger 文档路由
	// 访问 http://localhost:3000/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 API 路由组
	v1 := r.Group("/v1")
	{
		// items 商品管理
		items := v1.Group("/items")
		{
			items.GET("", c.Item.GetItems)
			items.GET("/:id", c.Item.GetItem)
			items.POST("", c.Item.CreateItem)
			items.PATCH("/:id", c.Item.UpdateItemFields)
			items.DELETE("/:id", c.Item.DeleteItem)
		}

		// bins 收纳箱管理
		bins := v1.Group("/bins")
		{
			bins.GET("", c.Bin.GetBins)
			bins.GET("/:id", c.Bin.GetBin)
			bins.POST("", c.Bin.CreateBin)
			bins.PATCH("/:id", c.Bin.UpdateBinFields)
			bins.DELETE("/:id", c.Bin.DeleteBin)
			bins.PUT("/:id/name", c.Bin.UpdateBinName)
			bins.PUT("/:id/full", c.Bin.UpdateBinIsFull)
			bins.POST("/:id/items/:itemId", c.Bin.AddItemToBin)
			bins.DELETE("/:id/items/:itemId", c.Bin.RemoveItemFromBin)
		}

		// settings 配置管理
		settings := v1.Group("/settings")
		{
			settings.GET("", c.Setting.GetSettings)
			settings.PUT("", c.Setting.UpdateSettings)
		}

		// posh 抓取同步
		posh := v1.Group("/posh")
		{
			posh.GET("", c.Posh.Hello)
			posh.POST("/scrape", c.Posh.TriggerScrape)
		}
	}

	return r
}

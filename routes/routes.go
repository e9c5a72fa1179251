package routes

import (
	"IntrovirghtGo/config"
	"IntrovirghtGo/controllers"
	"IntrovirghtGo/middleware"
	"IntrovirghtGo/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部路由，返回需要在关闭时等待后台任务的组件
func RegisterRoutes(r *gin.Engine, conf config.Config, client *services.DeepseekClient, lexicon *services.Lexicon) (*controllers.ChatController, *services.ConversationService) {
	// 分析相关服务显式构建后注入控制器，便于替换和测试
	analyzer := services.NewEmotionAnalyzer(lexicon)
	detector := services.NewCrisisDetector()
	aggregator := services.NewPatternAggregator()
	conversationService := services.NewConversationService(client, detector)

	authController := controllers.AuthController{}
	chatController := controllers.NewChatController(conversationService)
	entryController := controllers.NewEntryController(analyzer, conf.EntryEncryptionKey, conf.AnalysisMinLength)
	syncController := controllers.NewSyncController(conf.EntryEncryptionKey)
	patternsController := controllers.NewPatternsController(aggregator)
	preferencesController := controllers.NewPreferencesController(conversationService)
	userController := controllers.UserController{}
	redeemController := controllers.RedeemController{}

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/device", authController.DeviceLogin)
		public.POST("/auth/test-user", authController.CreateTestUser)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		// 日记同步与分析
		private.POST("/sync/entries", entryController.SyncEntries)
		private.GET("/sync/updates", syncController.GetUpdates)
		private.GET("/entries/:id/analyses", entryController.GetEntryAnalyses)
		private.GET("/patterns", patternsController.GetPatterns)

		// 陪伴聊天相关接口
		private.POST("/chat", chatController.SendMessage)
		private.GET("/conversations", chatController.GetConversations)
		private.GET("/conversations/:id/messages", chatController.GetConversationMessages)
		private.POST("/conversations/:id/archive", chatController.ArchiveConversation)

		// 偏好设置
		private.GET("/preferences", preferencesController.GetPreferences)
		private.PUT("/preferences", preferencesController.UpdatePreferences)
		private.POST("/preferences/feedback", preferencesController.SubmitFeedback)

		// 用户与兑换
		private.GET("/user", userController.GetUser)
		private.GET("/user/energy", userController.GetEnergy)
		private.POST("/redeem", redeemController.RedeemCode)
	}

	// 内部路由组（仅限服务器内部调用）
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	{
		internal.GET("/user/add-energy", userController.AddEnergy)
		internal.GET("/redeem/generate", redeemController.CreateRedeemCode)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return chatController, conversationService
}

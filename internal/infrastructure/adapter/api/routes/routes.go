package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/luckyrupee/wager-engine/internal/domain/port/core"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/handler"
	"github.com/luckyrupee/wager-engine/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	betHandler *handler.BetHandler,
	roundHandler *handler.RoundHandler,
	paymentHandler *handler.PaymentHandler,
	fourColorHandler *handler.FourColorHandler,
) {
	accountRoutes := router.Group("/account")
	{
		accountRoutes.GET("/:accountId/balance", accountHandler.GetBalance)
		accountRoutes.GET("/:accountId/bets", accountHandler.GetBets)

		accountRoutes.POST("/:accountId/bet/instant", betHandler.PlaceInstantBet)
		accountRoutes.POST("/:accountId/bet/live", betHandler.PlaceLiveBet)
		accountRoutes.POST("/:accountId/bet/fourcolor", betHandler.PlaceFourColorBet)

		accountRoutes.POST("/:accountId/payment/deposit", paymentHandler.RequestDeposit)
		accountRoutes.POST("/:accountId/payment/withdrawal", paymentHandler.RequestWithdrawal)
	}

	router.GET("/round/current", roundHandler.CurrentRound)

	adminRoutes := router.Group("/admin")
	{
		adminRoutes.GET("/payments/pending", paymentHandler.ListPending)
		adminRoutes.POST("/payments/:transactionId/resolve", paymentHandler.Resolve)

		adminRoutes.POST("/fourcolor/start", fourColorHandler.StartRound)
		adminRoutes.GET("/fourcolor/totals", fourColorHandler.Totals)
		adminRoutes.POST("/fourcolor/end", fourColorHandler.EndRound)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"gitlab.com/tierpass-exchange/ledger_api/logger"
)

func (srv *server) ListenToRequests() {
	log.Info().Str("worker", "http_listen_to_requests").Str("action", "start").Msg("HTTP Listen to requests - started")
	defer log.Info().Str("worker", "http_listen_to_requests").Str("action", "stop").Msg("HTTP Listen to requests - stopped")

	a := srv.actions

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Length", "Content-Type", "Accept", "X-Admin-Token"}
	corsConfig.AllowMethods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "OPTIONS"}

	r.Use(cors.New(corsConfig))
	r.Use(gin.Recovery())
	r.Use(logger.SetLogger(logger.Config{SkipPath: []string{"/ping", "/metrics"}}))

	r.GET("/ping", a.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/supply", a.GetSupply)

	// membership tiers
	tiers := r.Group("/tiers")
	{
		tiers.GET("/:tier/supply", a.GetTierSupply)
		tiers.GET("/:tier/quote", a.GetQuote)
		tiers.POST("/issue", a.IssueTier)
	}

	// holders
	holders := r.Group("/holders")
	{
		holders.GET("/:holder/tiers", a.GetUserTiers)
		holders.GET("/:holder/tiers/highest", a.GetHighestTier)
		holders.GET("/:holder/issuances", a.GetIssuanceHistory)
	}

	// referrals
	referrals := r.Group("/referrals")
	{
		referrals.GET("/:referrer", a.GetReferralRecord)
		referrals.GET("/:referrer/earnings", a.GetReferralEarnings)
	}

	// token ledger
	token := r.Group("/token")
	{
		token.GET("/supply", a.GetTokenSupply)
		token.GET("/balances/:account", a.GetTokenBalance)
		token.GET("/burn-state", a.GetBurnState)
		token.GET("/burn-events", a.GetBurnEvents)
		token.POST("/transfer", a.TransferToken)
	}

	// native value accounts
	native := r.Group("/native")
	{
		native.GET("/balances/:account", a.GetNativeBalance)
	}

	// admin functionality
	admin := r.Group("/admin", a.RestrictAdmin)
	{
		admin.PUT("/tiers/:tier/price", a.SetTierPrice)
		admin.PUT("/tiers/:tier/uri", a.SetTierURI)
		admin.PUT("/wallets", a.SetWallets)
		admin.PUT("/feed", a.SetFeed)
		admin.PUT("/token/burn-rate", a.SetBurnRate)
		admin.PUT("/token/pause", a.PauseToken)
		admin.PUT("/token/unpause", a.UnpauseToken)
		admin.POST("/native/deposit", a.DepositNative)
	}

	srv.HTTP = &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.config.Server.Port),
		Handler: r,
	}

	if err := srv.HTTP.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			log.Error().Err(err).Str("section", "server").Str("action", "ListenToRequests").
				Msgf("Unable to listen %d port", srv.config.Server.Port)
		}
	}
}

package handler

import "github.com/go-chi/chi/v5"

// Routes registers the museum endpoints on r, normally the /api/v1 subrouter
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/crops", func(r chi.Router) {
		r.Get("/", h.HandleListCrops)
		r.Get("/types", h.HandleCropTypes)
		r.Get("/{id}", h.HandleGetCrop)
	})

	r.Route("/adoptions", func(r chi.Router) {
		r.Post("/", h.HandleStartAdoption)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGetAdoption)
			r.Post("/proceed", h.HandleProceed)
			r.Post("/payment", h.HandleSelectPayment)
			r.Post("/back", h.HandleBack)
			r.Post("/confirm", h.HandleConfirm)
			r.Post("/cancel", h.HandleCancel)
		})
	})

	r.Get("/wallets", h.HandleWallets)
	r.Route("/profiles/{userID}", func(r chi.Router) {
		r.Get("/", h.HandleGetProfile)
		r.Post("/wallet", h.HandleConnectWallet)
		r.Post("/visits", h.HandleRecordVisit)
		r.Get("/badges", h.HandleBadges)
		r.Get("/passbook", h.HandlePassbook)
		r.Get("/share", h.HandleShare)
	})

	r.Route("/quests", func(r chi.Router) {
		r.Get("/", h.HandleListQuests)
		r.Get("/{provinceID}", h.HandleCurrentQuestion)
		r.Post("/{provinceID}/answer", h.HandleAnswer)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", h.HandleListTransactions)
		r.Get("/export", h.HandleExportLedger)
		r.Get("/{hash}", h.HandleGetTransaction)
		r.Get("/{hash}/breakdown", h.HandleBreakdown)
	})

	r.Get("/community/stats", h.HandleCommunityStats)
	r.Get("/community/activity", h.HandleActivityFeed)
	r.Get("/leaderboard", h.HandleLeaderboard)

	r.Post("/guide/ask", h.HandleAsk)
	r.Get("/guide/crops/{id}", h.HandleCropGuide)
	r.Get("/highlights", h.HandleHighlights)
}

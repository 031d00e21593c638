package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/lottery", func(r chi.Router) {
				r.Get("/configs", handler(s.getV1LotteryConfigs))
				r.Get("/configs/{key}", handler(s.getV1LotteryConfig))
				r.Get("/configs/{key}/diff", handler(s.getV1LotteryDiff))
				r.Post("/configs/{key}/sync", handler(s.postV1LotterySync))
				r.Post("/wiki", handler(s.postV1LotteryWiki))
			})

			r.Route("/commodity", func(r chi.Router) {
				r.Get("/", handler(s.getV1Commodity))
				r.Get("/diff", handler(s.getV1CommodityDiff))
				r.Post("/sync", handler(s.postV1CommoditySync))
			})

			r.Route("/workshop", func(r chi.Router) {
				r.Get("/types", handler(s.getV1WorkshopTypes))
				r.Get("/{type}", handler(s.getV1Workshop))
				r.Get("/{type}/diff", handler(s.getV1WorkshopDiff))
				r.Post("/{type}/sync", handler(s.postV1WorkshopSync))
			})

			r.Post("/jobs/sync", handler(s.postV1SyncJob))
			r.Get("/history", handler(s.getV1History))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(r.Context(), w, err)
		}
	}
}

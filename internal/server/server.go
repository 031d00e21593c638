package server

// Server groups the HTTP handlers of each config area.
type Server struct {
	LotteryServer
	CommodityServer
	WorkshopServer
	JobServer
}

func NewServer(
	lotteryServer LotteryServer,
	commodityServer CommodityServer,
	workshopServer WorkshopServer,
	jobServer JobServer,
) Server {
	return Server{
		LotteryServer:   lotteryServer,
		CommodityServer: commodityServer,
		WorkshopServer:  workshopServer,
		JobServer:       jobServer,
	}
}

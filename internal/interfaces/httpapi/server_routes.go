package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/messages", handler.IngestMessage)
	mux.HandleFunc("POST /v1/guilds/{guildID}/channels/{channelID}/gather", handler.GatherChannel)

	mux.HandleFunc("GET /v1/guilds/{guildID}/stats", handler.GetGuildStats)
	mux.HandleFunc("GET /v1/guilds/{guildID}/users/{userID}/stats", handler.GetUserStats)
	mux.HandleFunc("GET /v1/guilds/{guildID}/leaderboard", handler.GetLeaderboard)

	mux.HandleFunc("POST /v1/guilds/{guildID}/monitors", handler.AddMonitor)
	mux.HandleFunc("DELETE /v1/guilds/{guildID}/monitors/{channelID}", handler.RemoveMonitor)
	mux.HandleFunc("GET /v1/guilds/{guildID}/monitors", handler.ListMonitors)
}

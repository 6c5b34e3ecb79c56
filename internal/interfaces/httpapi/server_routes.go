package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /api/health", handler.GetHealth)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /api/goalies", handler.ListGoalies)
	mux.HandleFunc("GET /api/goalies/{goalieID}", handler.GetGoalie)
	mux.HandleFunc("GET /api/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/divisions", handler.ListDivisions)
	mux.HandleFunc("GET /api/team-stats", handler.ListTeamStats)
}

func registerRefreshRoutes(mux *http.ServeMux, handler *Handler, apiKey string) {
	mux.Handle("POST /api/refresh", RequireAPIKey(apiKey, http.HandlerFunc(handler.StartRefresh)))
	mux.Handle("POST /api/refresh/sync", RequireAPIKey(apiKey, http.HandlerFunc(handler.RunRefresh)))
	mux.Handle("POST /api/clear", RequireAPIKey(apiKey, http.HandlerFunc(handler.ClearData)))
}

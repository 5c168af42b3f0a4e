package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lukev/gwent_server/internal/api"
	"github.com/lukev/gwent_server/internal/lobby"
	"github.com/lukev/gwent_server/internal/match"
	"github.com/lukev/gwent_server/internal/wsevents"
)

func main() {
	hub := wsevents.NewHub()
	go hub.Run()

	matchMgr := match.NewManager()
	lobbyMgr := lobby.NewManager()

	matchHandler := api.NewMatchHandler(matchMgr, lobbyMgr, hub)
	lobbyHandler := api.NewLobbyHandler(lobbyMgr)

	router := mux.NewRouter()

	router.HandleFunc("/ws/spectate", func(w http.ResponseWriter, r *http.Request) {
		wsevents.ServeWs(hub, r.URL.Query().Get("matchId"), w, r)
	})

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Use(corsMiddleware)

	matchHandler.RegisterRoutes(router)
	lobbyHandler.RegisterRoutes(router)

	addr := ":8080"
	log.Printf("gwent server starting on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package wsevents

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development.
		// TODO: restrict this once a spectator frontend origin is known.
		return true
	},
}

// ServeWs upgrades r to a websocket connection, registers the client with
// hub, and immediately joins it to matchID's event room if one is given.
func ServeWs(hub *Hub, matchID string, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	client.hub.register <- client
	if matchID != "" {
		client.hub.JoinMatch(client, matchID)
	}

	go client.Serve()
}

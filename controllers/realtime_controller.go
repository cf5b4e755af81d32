package controllers

import (
	"net/http"

	"github.com/MominAnxs/diabetes-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// ReadingsWS streams reading.upserted and alert.created events so an open
// chart updates without polling.
func (rc *RealtimeController) ReadingsWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewWSClient(uid, conn)
	rc.RT.Register(cl)

	// single writer per connection; broadcasts and pings both go through it
	go cl.WritePump()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}

package controllers

import (
	"net/http"

	"github.com/MominAnxs/diabetes-tracker/services"

	"github.com/gin-gonic/gin"
)

type DevController struct {
	Push *services.PushService
}

func NewDevController(p *services.PushService) *DevController {
	return &DevController{Push: p}
}

type pushReq struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// PushTest sends a test notification to the caller's registered devices.
func (d *DevController) PushTest(c *gin.Context) {
	v, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	uid, _ := v.(uint)

	var req pushReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title == "" {
		req.Title = "Test alert"
	}
	if req.Body == "" {
		req.Body = "This is only a test."
	}
	if req.Data == nil {
		req.Data = map[string]string{"type": "high"}
	}

	d.Push.PushToUser(uid, req.Title, req.Body, req.Data)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

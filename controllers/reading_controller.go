package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/models"
	"github.com/MominAnxs/diabetes-tracker/services"

	"github.com/gin-gonic/gin"
)

type ReadingController struct {
	Svc *services.ReadingService
}

func NewReadingController(svc *services.ReadingService) *ReadingController {
	return &ReadingController{Svc: svc}
}

func readingJSON(r *models.GlucoseReading) gin.H {
	return gin.H{
		"id":           r.ID,
		"pre_reading":  r.PreReading,
		"post_reading": r.PostReading,
		"reading_date": r.ReadingDate.Format("2006-01-02"),
		"created_at":   r.CreatedAt,
	}
}

// GET /readings — trailing three months, oldest first.
func (rc *ReadingController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	readings, err := rc.Svc.ListRecentReadings(uid, 3)
	if err != nil {
		log.Printf("list readings failed for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load readings"})
		return
	}

	out := make([]gin.H, 0, len(readings))
	for i := range readings {
		out = append(out, readingJSON(&readings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"readings": out})
}

type submitReadingReq struct {
	PreReading  *float64 `json:"preReading"`
	PostReading *float64 `json:"postReading"`
	Date        string   `json:"date"` // YYYY-MM-DD, defaults to today
}

// POST /readings — insert or merge the day's record.
func (rc *ReadingController) Submit(c *gin.Context) {
	uid := c.GetUint("userID")

	var req submitReadingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	reading, err := rc.Svc.SubmitReading(uid, date, req.PreReading, req.PostReading)
	if err != nil {
		if services.IsValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("submit reading failed for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save reading"})
		return
	}

	services.BroadcastReading(uid, reading)

	c.JSON(http.StatusOK, gin.H{"reading": readingJSON(reading)})
}

// GET /readings/stats — windowed summary against the user's target band.
func (rc *ReadingController) Stats(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	stats, err := rc.Svc.ReadingSummary(uid, 3, user.TargetLow, user.TargetHigh)
	if err != nil {
		log.Printf("reading summary failed for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/models"
	"github.com/MominAnxs/diabetes-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupReadingRouter(t *testing.T) (*gin.Engine, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.GlucoseReading{}, &models.Alert{}))
	config.DB = db

	user := models.User{Email: t.Name() + "@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	ctrl := NewReadingController(services.NewReadingService(db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("email", user.Email)
	})
	r.GET("/readings", ctrl.List)
	r.POST("/readings", ctrl.Submit)
	r.GET("/readings/stats", ctrl.Stats)

	return r, user
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitEndpoint_CreatesReading(t *testing.T) {
	r, _ := setupReadingRouter(t)

	w := doJSON(t, r, http.MethodPost, "/readings", `{"preReading": 95, "date": "2026-01-10"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reading struct {
			ID          uint     `json:"id"`
			PreReading  *float64 `json:"pre_reading"`
			PostReading *float64 `json:"post_reading"`
			ReadingDate string   `json:"reading_date"`
		} `json:"reading"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotZero(t, resp.Reading.ID)
	require.NotNil(t, resp.Reading.PreReading)
	assert.Equal(t, 95.0, *resp.Reading.PreReading)
	assert.Nil(t, resp.Reading.PostReading)
	assert.Equal(t, "2026-01-10", resp.Reading.ReadingDate)
}

func TestSubmitEndpoint_MergeKeepsSameRow(t *testing.T) {
	r, _ := setupReadingRouter(t)

	w1 := doJSON(t, r, http.MethodPost, "/readings", `{"preReading": 95, "date": "2026-01-10"}`)
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := doJSON(t, r, http.MethodPost, "/readings", `{"postReading": 150, "date": "2026-01-10"}`)
	require.Equal(t, http.StatusOK, w2.Code)

	var first, second struct {
		Reading struct {
			ID          uint     `json:"id"`
			PreReading  *float64 `json:"pre_reading"`
			PostReading *float64 `json:"post_reading"`
		} `json:"reading"`
	}
	require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &first))
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &second))

	assert.Equal(t, first.Reading.ID, second.Reading.ID)
	require.NotNil(t, second.Reading.PreReading)
	require.NotNil(t, second.Reading.PostReading)
	assert.Equal(t, 95.0, *second.Reading.PreReading)
	assert.Equal(t, 150.0, *second.Reading.PostReading)
}

func TestSubmitEndpoint_RejectsEmptyBody(t *testing.T) {
	r, _ := setupReadingRouter(t)

	w := doJSON(t, r, http.MethodPost, "/readings", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitEndpoint_RejectsFutureDate(t *testing.T) {
	r, _ := setupReadingRouter(t)

	w := doJSON(t, r, http.MethodPost, "/readings", `{"preReading": 95, "date": "2099-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitEndpoint_RejectsMalformedDate(t *testing.T) {
	r, _ := setupReadingRouter(t)

	w := doJSON(t, r, http.MethodPost, "/readings", `{"preReading": 95, "date": "10/01/2026"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEndpoint_ReturnsAscendingWindow(t *testing.T) {
	r, _ := setupReadingRouter(t)

	now := time.Now().UTC()
	day := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	}

	// inserted out of order on purpose
	for _, daysAgo := range []int{10, 60, 30} {
		body := fmt.Sprintf(`{"preReading": 120, "date": %q}`, day(daysAgo))
		w := doJSON(t, r, http.MethodPost, "/readings", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/readings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Readings []struct {
			ReadingDate string `json:"reading_date"`
		} `json:"readings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Readings, 3)
	assert.Equal(t, day(60), resp.Readings[0].ReadingDate)
	assert.Equal(t, day(30), resp.Readings[1].ReadingDate)
	assert.Equal(t, day(10), resp.Readings[2].ReadingDate)
}

func TestListEndpoint_EmptyIsOK(t *testing.T) {
	r, _ := setupReadingRouter(t)

	w := doJSON(t, r, http.MethodGet, "/readings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Readings []json.RawMessage `json:"readings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Readings)
}

func TestStatsEndpoint(t *testing.T) {
	r, _ := setupReadingRouter(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	w := doJSON(t, r, http.MethodPost, "/readings",
		fmt.Sprintf(`{"preReading": 110, "postReading": 150, "date": %q}`, yesterday))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/readings/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats struct {
			Days       int     `json:"days"`
			AvgPre     float64 `json:"avg_pre"`
			AvgPost    float64 `json:"avg_post"`
			InRangePct float64 `json:"in_range_pct"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stats.Days)
	assert.Equal(t, 110.0, resp.Stats.AvgPre)
	assert.Equal(t, 150.0, resp.Stats.AvgPost)
	assert.Equal(t, 100.0, resp.Stats.InRangePct)
}

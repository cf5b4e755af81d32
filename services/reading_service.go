package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/MominAnxs/diabetes-tracker/models"
	"github.com/MominAnxs/diabetes-tracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Input problems detected before any database access.
var (
	ErrNoReadings     = errors.New("at least one of pre_reading or post_reading is required")
	ErrFutureDate     = errors.New("reading date cannot be in the future")
	ErrInvalidReading = errors.New("invalid reading value")
)

// IsValidationErr reports whether err should map to a 400 response.
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrNoReadings) ||
		errors.Is(err, ErrFutureDate) ||
		errors.Is(err, ErrInvalidReading)
}

func dayStartUTC(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}

type ReadingService struct{ db *gorm.DB }

func NewReadingService(db *gorm.DB) *ReadingService { return &ReadingService{db: db} }

// SubmitReading records one or both of a day's measurements. One row exists
// per (user, date): a first submission inserts it, a later submission for
// the same date merges field-by-field — a supplied value overwrites, an
// omitted one keeps whatever is stored. The merge runs as a single
// ON CONFLICT statement so two concurrent submissions cannot produce two
// rows for the same date.
func (s *ReadingService) SubmitReading(userID uint, date time.Time, pre, post *float64) (*models.GlucoseReading, error) {
	if pre == nil && post == nil {
		return nil, ErrNoReadings
	}
	for _, v := range []*float64{pre, post} {
		if v == nil {
			continue
		}
		if err := utils.ValidateReading(*v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReading, err)
		}
	}

	if date.IsZero() {
		date = time.Now()
	}
	day := dayStartUTC(date)
	if day.After(dayStartUTC(time.Now())) {
		return nil, ErrFutureDate
	}

	reading := models.GlucoseReading{
		UserID:      userID,
		ReadingDate: day,
		PreReading:  pre,
		PostReading: post,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "reading_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"pre_reading":  gorm.Expr("COALESCE(excluded.pre_reading, pre_reading)"),
			"post_reading": gorm.Expr("COALESCE(excluded.post_reading, post_reading)"),
			"updated_at":   time.Now(),
		}),
	}).Create(&reading).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the merged row, not just this submission.
	var stored models.GlucoseReading
	if err := s.db.Where("user_id = ? AND reading_date = ?", userID, day).First(&stored).Error; err != nil {
		return nil, err
	}

	s.emitOutOfRangeAlerts(userID, day, pre, post)

	return &stored, nil
}

// ListRecentReadings returns the trailing window ascending by date. The
// ascending order is what the chart consumer relies on; an empty slice
// just means no data yet.
func (s *ReadingService) ListRecentReadings(userID uint, windowMonths int) ([]models.GlucoseReading, error) {
	if windowMonths <= 0 {
		windowMonths = 3
	}
	since := dayStartUTC(time.Now()).AddDate(0, -windowMonths, 0)

	var readings []models.GlucoseReading
	err := s.db.
		Where("user_id = ? AND reading_date >= ?", userID, since).
		Order("reading_date ASC").
		Find(&readings).Error
	return readings, err
}

type ReadingStats struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Days       int     `json:"days"`
	AvgPre     float64 `json:"avg_pre"`
	AvgPost    float64 `json:"avg_post"`
	Lowest     float64 `json:"lowest"`
	Highest    float64 `json:"highest"`
	InRangePct float64 `json:"in_range_pct"`
}

// ReadingSummary aggregates the trailing window against the user's target
// band for the dashboard.
func (s *ReadingService) ReadingSummary(userID uint, windowMonths int, targetLow, targetHigh float64) (*ReadingStats, error) {
	readings, err := s.ListRecentReadings(userID, windowMonths)
	if err != nil {
		return nil, err
	}
	if windowMonths <= 0 {
		windowMonths = 3
	}

	now := dayStartUTC(time.Now())
	out := &ReadingStats{
		From: now.AddDate(0, -windowMonths, 0).Format("2006-01-02"),
		To:   now.Format("2006-01-02"),
		Days: len(readings),
	}

	var preSum, postSum float64
	var preN, postN, inRange, total int
	for _, r := range readings {
		for _, v := range []*float64{r.PreReading, r.PostReading} {
			if v == nil {
				continue
			}
			total++
			if utils.ClassifyReading(*v, targetLow, targetHigh) == "in_range" {
				inRange++
			}
			if out.Lowest == 0 || *v < out.Lowest {
				out.Lowest = *v
			}
			if *v > out.Highest {
				out.Highest = *v
			}
		}
		if r.PreReading != nil {
			preSum += *r.PreReading
			preN++
		}
		if r.PostReading != nil {
			postSum += *r.PostReading
			postN++
		}
	}
	if preN > 0 {
		out.AvgPre = preSum / float64(preN)
	}
	if postN > 0 {
		out.AvgPost = postSum / float64(postN)
	}
	if total > 0 {
		out.InRangePct = float64(inRange) / float64(total) * 100.0
	}
	return out, nil
}

// emitOutOfRangeAlerts classifies only the values supplied in this
// submission so a merge does not re-alert on the untouched field.
func (s *ReadingService) emitOutOfRangeAlerts(userID uint, day time.Time, pre, post *float64) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return
	}

	check := func(label string, v *float64) {
		if v == nil {
			return
		}
		band := utils.ClassifyReading(*v, user.TargetLow, user.TargetHigh)
		if band == "in_range" {
			return
		}
		msg := fmt.Sprintf("%s reading of %.0f mg/dL on %s is %s your target range",
			label, *v, day.Format("2006-01-02"), map[string]string{"low": "below", "high": "above"}[band])
		EmitAlert(userID, band, msg)
	}
	check("Pre-meal", pre)
	check("Post-meal", post)
}

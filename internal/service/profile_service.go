package service

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// ProfileScore is the yearly performance breakdown shown on the profile page
type ProfileScore struct {
	Year           int     `json:"year"`
	WorkingDays    int     `json:"workingDays"`
	TotalDays      int     `json:"totalDays"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	HalfDay        int     `json:"halfDay"`
	Absent         int     `json:"absent"`
	Score          float64 `json:"score"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// ProfileService defines the interface for the personal heatmap and score views
type ProfileService interface {
	Heatmap(ctx context.Context, userID uuid.UUID, year int) (map[string]model.HeatmapEntry, error)
	Score(ctx context.Context, userID uuid.UUID, year int) (*ProfileScore, error)
}

type profileService struct {
	repo repository.AttendanceRepository
	now  func() time.Time
}

// NewProfileService returns a new instance of ProfileService
func NewProfileService(repo repository.AttendanceRepository) ProfileService {
	return &profileService{repo: repo, now: time.Now}
}

// Heatmap returns the user's year of attendance keyed by ISO date. Days
// without a record are simply absent from the map.
func (s *profileService) Heatmap(ctx context.Context, userID uuid.UUID, year int) (map[string]model.HeatmapEntry, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	records, err := s.repo.ListByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	heatmap := make(map[string]model.HeatmapEntry, len(records))
	for _, r := range records {
		heatmap[r.Date.Format("2006-01-02")] = model.HeatmapEntry{
			Status:       r.Status,
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			TotalHours:   r.TotalHours,
		}
	}
	return heatmap, nil
}

// Score computes the weighted attendance score across a full year.
func (s *profileService) Score(ctx context.Context, userID uuid.UUID, year int) (*ProfileScore, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	records, err := s.repo.ListByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	score := &ProfileScore{Year: year, TotalDays: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.StatusPresent:
			score.Present++
		case model.StatusLate:
			score.Late++
		case model.StatusHalfDay:
			score.HalfDay++
		}
	}

	score.WorkingDays = elapsedWorkingDaysInYear(s.now(), year)
	if absent := score.WorkingDays - score.Present - score.Late - score.HalfDay; absent > 0 {
		score.Absent = absent
	}
	score.Score = PerformanceScore(score.Present, score.Late, score.HalfDay, score.WorkingDays)
	score.AttendanceRate = AttendanceRate(score.Present, score.Late, score.HalfDay, score.WorkingDays)
	return score, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-reservation-backend/internal/court"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/response"
	"github.com/nekogravitycat/court-reservation-backend/internal/report"
	"github.com/nekogravitycat/court-reservation-backend/internal/reservation"
	"github.com/nekogravitycat/court-reservation-backend/internal/user"
)

type UserCounter interface {
	CountByStatus(ctx context.Context) (map[user.Status]int, error)
}

type CourtCounter interface {
	CountByStatus(ctx context.Context) (map[court.Status]int, error)
}

type ReservationSummarizer interface {
	Summarize(ctx context.Context) (map[reservation.Status]reservation.Summary, error)
}

type ReportCounter interface {
	CountByStatus(ctx context.Context) (map[report.Status]int, error)
}

type ReservationStats struct {
	Count      int   `json:"count"`
	TotalPrice int64 `json:"total_price"`
}

type StatsResponse struct {
	Users        map[user.Status]int                     `json:"users"`
	Courts       map[court.Status]int                    `json:"courts"`
	Reservations map[reservation.Status]ReservationStats `json:"reservations"`
	Reports      map[report.Status]int                   `json:"reports"`
	Revenue      int64                                   `json:"revenue"`
	OpenReports  int                                     `json:"open_reports"`
}

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	users        UserCounter
	courts       CourtCounter
	reservations ReservationSummarizer
	reports      ReportCounter
}

func NewStatsHandler(users UserCounter, courts CourtCounter, reservations ReservationSummarizer, reports ReportCounter) *StatsHandler {
	return &StatsHandler{
		users:        users,
		courts:       courts,
		reservations: reservations,
		reports:      reports,
	}
}

// Get GET /v1/admin/stats
func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.users.CountByStatus(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	courts, err := h.courts.CountByStatus(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.reservations.Summarize(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	reports, err := h.reports.CountByStatus(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := StatsResponse{
		Users:        users,
		Courts:       courts,
		Reservations: make(map[reservation.Status]ReservationStats, len(summary)),
		Reports:      reports,
	}
	for status, s := range summary {
		resp.Reservations[status] = ReservationStats{Count: s.Count, TotalPrice: s.TotalPrice}
		if status == reservation.StatusApproved || status == reservation.StatusCompleted {
			resp.Revenue += s.TotalPrice
		}
	}
	for status, n := range reports {
		if status.Open() {
			resp.OpenReports += n
		}
	}

	c.JSON(http.StatusOK, resp)
}

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/habits"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
)

type toggleRequest struct {
	Date string `json:"date"`
}

type completionRequest struct {
	Date  string  `json:"date"`
	State string  `json:"state"`
	Notes *string `json:"notes"`
}

func (s *Server) serverTime(c *gin.Context) {
	now := s.svc.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"server_time": now.Format(time.RFC3339),
		"server_date": now.Format(constants.DateFormat),
	})
}

func (s *Server) listHabits(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	list, err := s.svc.ListHabits(activeOnly)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": list})
}

func (s *Server) getHabit(c *gin.Context) {
	habit, err := s.svc.GetHabit(c.Param("externalID"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if habit == nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": []string{habits.MsgHabitNotFound}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

func (s *Server) createHabit(c *gin.Context) {
	var in habits.CreateHabitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	result, err := s.svc.CreateHabit(in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) updateHabit(c *gin.Context) {
	var in habits.UpdateHabitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	result, err := s.svc.UpdateHabit(c.Param("externalID"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) deleteHabit(c *gin.Context) {
	result, err := s.svc.DeleteHabit(c.Param("externalID"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) toggleCompletion(c *gin.Context) {
	var req toggleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
			return
		}
	}

	result, err := s.svc.ToggleCompletion(c.Param("externalID"), req.Date)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) updateCompletion(c *gin.Context) {
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	result, err := s.svc.UpdateCompletion(c.Param("externalID"), req.Date, req.State, req.Notes)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) monthData(c *gin.Context) {
	now := s.svc.Now().UTC()
	year := queryInt(c, "year", now.Year())
	month := queryInt(c, "month", int(now.Month()))

	days, err := s.svc.MonthData(c.Param("externalID"), year, month)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"errors": []string{habits.MsgHabitNotFound}})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "days": days})
}

func (s *Server) habitStats(c *gin.Context) {
	habit, err := s.svc.GetHabit(c.Param("externalID"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if habit == nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": []string{habits.MsgHabitNotFound}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": habit.Stats()})
}

func (s *Server) getSettings(c *gin.Context) {
	settings, err := s.svc.Settings()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_settings": settings})
}

func (s *Server) updateSettings(c *gin.Context) {
	var in habits.UpdateSettingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	result, err := s.svc.UpdateSettings(in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) fail(c *gin.Context, err error) {
	logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/timetable/internal/export"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type dayResponse struct {
	Day    models.Day         `json:"day"`
	Blocks []models.TimeBlock `json:"blocks"`
}

type slotResponse struct {
	Day   models.Day `json:"day"`
	Start string     `json:"start"`
	End   string     `json:"end"`
	Free  bool       `json:"free"`
}

type activityPayload struct {
	Activity     string `json:"activity"`
	Priority     int    `json:"priority"`
	DeadlineDate string `json:"deadline_date"`
	Timing       int    `json:"timing"`
}

type compulsoryEventPayload struct {
	Event     string      `json:"event"`
	Day       *models.Day `json:"day"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
}

// blockPayload places a block directly. A BREAK without an end lasts the
// configured break length.
type blockPayload struct {
	Day   *models.Day       `json:"day"`
	Start string            `json:"start"`
	End   string            `json:"end"`
	Name  string            `json:"name"`
	Type  *models.BlockType `json:"type"`
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/week", s.resolve(http.StatusOK, s.getWeek))
	api.GET("/days/:day", s.resolve(http.StatusOK, s.getDay))
	api.GET("/slots", s.resolve(http.StatusOK, s.checkSlot))
	api.POST("/blocks", s.resolve(http.StatusCreated, s.addBlock))
	api.GET("/activities", s.resolve(http.StatusOK, s.listActivities))
	api.POST("/activities", s.resolve(http.StatusCreated, s.addActivity))
	api.GET("/compulsory-events", s.resolve(http.StatusOK, s.listCompulsoryEvents))
	api.POST("/compulsory-events", s.resolve(http.StatusCreated, s.addCompulsoryEvent))
	api.GET("/metrics", s.resolve(http.StatusOK, s.getMetrics))
	api.GET("/validate", s.resolve(http.StatusOK, s.validate))
	api.GET("/export.ics", s.exportICS)
}

// GET /api/week
func (s *Server) getWeek(c *gin.Context) (any, *APIError) {
	tt := s.session.Timetable()
	out := make([]dayResponse, 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		out = append(out, dayResponse{Day: d, Blocks: tt.Day(d)})
	}
	return out, nil
}

// GET /api/days/:day
func (s *Server) getDay(c *gin.Context) (any, *APIError) {
	day, err := models.ParseDay(c.Param("day"))
	if err != nil {
		return nil, badRequest(err.Error())
	}
	return dayResponse{Day: day, Blocks: s.session.Timetable().Day(day)}, nil
}

// GET /api/slots?day=monday&start=09:00&end=10:00
func (s *Server) checkSlot(c *gin.Context) (any, *APIError) {
	day, err := models.ParseDay(c.Query("day"))
	if err != nil {
		return nil, badRequest(err.Error())
	}
	start, end := c.Query("start"), c.Query("end")
	free, err := s.session.IsSlotFree(day, start, end)
	if err != nil {
		return nil, fromError(err)
	}
	return slotResponse{Day: day, Start: start, End: end, Free: free}, nil
}

// POST /api/blocks
func (s *Server) addBlock(c *gin.Context) (any, *APIError) {
	var req blockPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err.Error())
	}
	if req.Day == nil {
		return nil, badRequest("day: required")
	}
	if req.Type == nil {
		return nil, badRequest("type: required")
	}

	day := *req.Day
	var err error
	if *req.Type == models.BlockBreak && req.End == "" {
		err = s.session.AddBreak(day, req.Start, req.Name)
	} else {
		err = s.session.AddEvent(day, req.Start, req.End, req.Name, *req.Type)
	}
	if err != nil {
		return nil, fromError(err)
	}
	return dayResponse{Day: day, Blocks: s.session.Timetable().Day(day)}, nil
}

// GET /api/activities
func (s *Server) listActivities(c *gin.Context) (any, *APIError) {
	return s.session.Requests().Activities(), nil
}

// POST /api/activities
func (s *Server) addActivity(c *gin.Context) (any, *APIError) {
	var req activityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err.Error())
	}
	deadline, err := utils.ParseDate(req.DeadlineDate)
	if err != nil {
		return nil, badRequest("deadline_date: expected YYYY-MM-DD")
	}
	out, err := s.session.AddActivity(req.Activity, req.Priority, deadline, req.Timing)
	if err != nil {
		return nil, fromError(err)
	}
	return out, nil
}

// GET /api/compulsory-events
func (s *Server) listCompulsoryEvents(c *gin.Context) (any, *APIError) {
	return s.session.Requests().CompulsoryEvents(), nil
}

// POST /api/compulsory-events
func (s *Server) addCompulsoryEvent(c *gin.Context) (any, *APIError) {
	var req compulsoryEventPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, badRequest(err.Error())
	}
	if req.Day == nil {
		return nil, badRequest("day: required")
	}
	out, err := s.session.AddCompulsoryEvent(req.Event, *req.Day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fromError(err)
	}
	return out, nil
}

// GET /api/metrics
func (s *Server) getMetrics(c *gin.Context) (any, *APIError) {
	return s.session.Metrics(), nil
}

// GET /api/validate
func (s *Server) validate(c *gin.Context) (any, *APIError) {
	return s.session.Validate(), nil
}

// GET /api/export.ics?week_of=YYYY-MM-DD&weeks=N
func (s *Server) exportICS(c *gin.Context) {
	opts := export.Options{Location: s.session.Location()}
	if v := c.Query("week_of"); v != "" {
		weekOf, err := utils.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_of: expected YYYY-MM-DD"})
			return
		}
		opts.WeekOf = weekOf
	}
	if v := c.Query("weeks"); v != "" {
		var q struct {
			Weeks int `form:"weeks" binding:"min=0"`
		}
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.Weeks = q.Weeks
	}

	body, apiErr := s.locked(c, func(*gin.Context) (any, *APIError) {
		var buf bytes.Buffer
		if err := export.Write(&buf, s.session.Timetable().Week(), opts); err != nil {
			return nil, fromError(err)
		}
		return buf.Bytes(), nil
	})
	if apiErr != nil {
		c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timetable.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body.([]byte))
}

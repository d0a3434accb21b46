package model

import (
	"strconv"
	"strings"
	"time"
)

// ValidScheduleDays are the days a class may be scheduled on.
var ValidScheduleDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Schedule is one class meeting slot on a teacher's weekly timetable.
type Schedule struct {
	ID        int       `json:"id"`
	TeacherID int       `json:"teacher_id"`
	Section   string    `json:"section"`
	Subject   string    `json:"subject"`
	Day       string    `json:"day"`
	StartTime string    `json:"start_time"` // HH:MM, 24-hour
	EndTime   string    `json:"end_time"`   // HH:MM, 24-hour
	Room      string    `json:"room"`
	CreatedAt time.Time `json:"created_at"`
}

// minuteOfDay parses an HH:MM clock string into minutes since midnight.
// Returns -1 for malformed input.
func minuteOfDay(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// ValidClock reports whether clock is a well-formed HH:MM time.
func ValidClock(clock string) bool {
	return minuteOfDay(clock) >= 0
}

// OverlapsWith reports whether two slots collide: same day and intersecting
// time ranges. Back-to-back slots do not overlap.
func (s Schedule) OverlapsWith(other Schedule) bool {
	if s.Day != other.Day {
		return false
	}
	sStart, sEnd := minuteOfDay(s.StartTime), minuteOfDay(s.EndTime)
	oStart, oEnd := minuteOfDay(other.StartTime), minuteOfDay(other.EndTime)
	return !(sEnd <= oStart || sStart >= oEnd)
}

// AddScheduleRequest adds a slot to a teacher's timetable.
type AddScheduleRequest struct {
	Section   string `json:"section" binding:"required,section"`
	Subject   string `json:"subject" binding:"required,min=2,max=120"`
	Day       string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time" binding:"required,datetime=15:04"`
	Room      string `json:"room" binding:"required,min=1,max=40"`
}

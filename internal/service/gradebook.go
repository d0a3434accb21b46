package service

import (
	"math"

	"github.com/campushq/campus-backend/internal/model"
)

// Grade weighting: activities 50%, exams 40%, attendance 10%.
const (
	weightActivities = 0.5
	weightExams      = 0.4
	weightAttendance = 0.1
)

// Attendance contributions per mark.
const (
	attendancePresentScore = 100.0
	attendanceTardyScore   = 50.0
	attendanceAbsentScore  = 0.0
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ActivityScore converts a raw activity result to a 0..100 score.
func ActivityScore(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(correct) / float64(total) * 100)
}

// AttendanceAverage converts attendance marks to a 0..100 average.
// Returns 0 when no marks are recorded.
func AttendanceAverage(s model.AttendanceSummary) float64 {
	total := s.Present + s.Absent + s.Tardy
	if total == 0 {
		return 0
	}
	sum := float64(s.Present)*attendancePresentScore +
		float64(s.Tardy)*attendanceTardyScore +
		float64(s.Absent)*attendanceAbsentScore
	return sum / float64(total)
}

// SubjectGrade computes the weighted grade for one subject. Categories
// with no data contribute zero through their weight.
func SubjectGrade(activities []model.Activity, exams map[model.ExamType]float64, attendance model.AttendanceSummary) float64 {
	var activityMean float64
	if len(activities) > 0 {
		var sum float64
		for _, a := range activities {
			sum += a.Score
		}
		activityMean = sum / float64(len(activities))
	}

	var examMean float64
	if len(exams) > 0 {
		var sum float64
		for _, score := range exams {
			sum += score
		}
		examMean = sum / float64(len(exams))
	}

	grade := weightActivities*activityMean +
		weightExams*examMean +
		weightAttendance*AttendanceAverage(attendance)
	return round2(grade)
}

// GPA averages subject grades over non-exempt subjects. The second return
// is false when no subject is gradable.
func GPA(grades []model.SubjectGradeView) (float64, bool) {
	var sum float64
	var n int
	for _, g := range grades {
		if g.Exempt {
			continue
		}
		sum += g.Grade
		n++
	}
	if n == 0 {
		return 0, false
	}
	return round2(sum / float64(n)), true
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/campus-backend/internal/model"
)

func TestActivityScore(t *testing.T) {
	assert.Equal(t, 80.0, ActivityScore(8, 10))
	assert.Equal(t, 100.0, ActivityScore(10, 10))
	assert.Equal(t, 0.0, ActivityScore(0, 10))
	assert.Equal(t, 66.67, ActivityScore(2, 3))

	// Guard against a zero-item activity.
	assert.Equal(t, 0.0, ActivityScore(5, 0))
}

func TestAttendanceAverage(t *testing.T) {
	assert.Equal(t, 0.0, AttendanceAverage(model.AttendanceSummary{}))
	assert.Equal(t, 100.0, AttendanceAverage(model.AttendanceSummary{Present: 10}))
	assert.Equal(t, 0.0, AttendanceAverage(model.AttendanceSummary{Absent: 4}))
	assert.Equal(t, 50.0, AttendanceAverage(model.AttendanceSummary{Tardy: 3}))

	// 2 present, 1 tardy, 1 absent: (200 + 50 + 0) / 4 = 62.5
	got := AttendanceAverage(model.AttendanceSummary{Present: 2, Tardy: 1, Absent: 1})
	assert.Equal(t, 62.5, got)
}

func TestSubjectGrade(t *testing.T) {
	activities := []model.Activity{
		{Score: 80},
		{Score: 90},
	}
	exams := map[model.ExamType]float64{
		model.ExamPrelim:  70,
		model.ExamMidterm: 80,
		model.ExamFinals:  90,
	}
	attendance := model.AttendanceSummary{Present: 9, Tardy: 1}

	// activities mean 85, exams mean 80, attendance 95
	// 0.5*85 + 0.4*80 + 0.1*95 = 42.5 + 32 + 9.5 = 84
	got := SubjectGrade(activities, exams, attendance)
	assert.Equal(t, 84.0, got)
}

func TestSubjectGradeEmptyCategories(t *testing.T) {
	// No data at all yields zero.
	assert.Equal(t, 0.0, SubjectGrade(nil, nil, model.AttendanceSummary{}))

	// Missing categories contribute zero through their weight.
	exams := map[model.ExamType]float64{model.ExamPrelim: 100}
	got := SubjectGrade(nil, exams, model.AttendanceSummary{})
	assert.Equal(t, 40.0, got)
}

func TestGPA(t *testing.T) {
	grades := []model.SubjectGradeView{
		{Subject: "Math", Grade: 90},
		{Subject: "English", Grade: 80},
		{Subject: "PE", Grade: 0, Exempt: true},
	}

	gpa, ok := GPA(grades)
	assert.True(t, ok)
	assert.Equal(t, 85.0, gpa)
}

func TestGPANoGradableSubjects(t *testing.T) {
	_, ok := GPA(nil)
	assert.False(t, ok)

	// All-exempt students have no GPA.
	_, ok = GPA([]model.SubjectGradeView{{Subject: "PE", Exempt: true}})
	assert.False(t, ok)
}

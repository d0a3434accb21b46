package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/campushq/campus-backend/internal/model"
)

// ExportService renders admin exports as XLSX workbooks.
type ExportService struct {
	studentService *StudentService
}

// NewExportService creates a new ExportService.
func NewExportService(studentService *StudentService) *ExportService {
	return &ExportService{studentService: studentService}
}

// SectionGradeSheet renders a section's roster with per-subject grades and
// GPA, one student per row. Returns the workbook bytes and a filename.
func (s *ExportService) SectionGradeSheet(ctx context.Context, sectionKey string) ([]byte, string, error) {
	students, section, err := s.studentService.ListBySection(ctx, sectionKey)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Grades"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Registry No", "Name", "Status"}
	headers = append(headers, section.Subjects...)
	headers = append(headers, "GPA")
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for row, student := range students {
		grades, err := s.studentService.GetGrades(ctx, student.ID)
		if err != nil {
			return nil, "", err
		}
		bySubject := make(map[string]model.SubjectGradeView, len(grades))
		for _, g := range grades {
			bySubject[g.Subject] = g
		}

		values := []interface{}{student.RegistryNo, student.Name, string(student.Status)}
		for _, subject := range section.Subjects {
			if g, ok := bySubject[subject]; ok {
				if g.Exempt {
					values = append(values, "exempt")
				} else {
					values = append(values, g.Grade)
				}
			} else {
				values = append(values, "")
			}
		}
		if gpa, ok := GPA(grades); ok {
			values = append(values, gpa)
		} else {
			values = append(values, "")
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("grades-%s.xlsx", section.Key())
	return buf.Bytes(), filename, nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-backend/internal/model"
)

// stubParentDirectory answers every lookup with a fixed parent or error.
type stubParentDirectory struct {
	parent *model.Parent
	err    error
}

func (s *stubParentDirectory) GetByID(ctx context.Context, id int) (*model.Parent, error) {
	return s.parent, s.err
}

func (s *stubParentDirectory) GetByStudent(ctx context.Context, studentID int) (*model.Parent, error) {
	return s.parent, s.err
}

func (s *stubParentDirectory) ListIDs(ctx context.Context) ([]int, error) {
	return nil, s.err
}

func TestNotifyGradeUpdateUnlinkedStudent(t *testing.T) {
	svc := NewNotificationService(nil, &stubParentDirectory{err: pgx.ErrNoRows}, nil)
	student := &model.Student{ID: 7, Name: "Ana Reyes"}

	err := svc.NotifyGradeUpdate(context.Background(), student, "Algebra", 88)

	assert.NoError(t, err)
}

func TestNotifyGradeUpdateLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	svc := NewNotificationService(nil, &stubParentDirectory{err: lookupErr}, nil)
	student := &model.Student{ID: 7, Name: "Ana Reyes"}

	err := svc.NotifyGradeUpdate(context.Background(), student, "Algebra", 88)

	require.ErrorIs(t, err, lookupErr)
}

func TestNotifyAttendanceLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	svc := NewNotificationService(nil, &stubParentDirectory{err: lookupErr}, nil)
	student := &model.Student{ID: 7, Name: "Ana Reyes"}

	err := svc.NotifyAttendance(context.Background(), student, "Algebra", "2026-08-28", model.AttendanceAbsent)

	require.ErrorIs(t, err, lookupErr)
}

func TestNotifyAttendancePresentSkipsLookup(t *testing.T) {
	// Present marks never alert, so even a failing lookup must not surface.
	svc := NewNotificationService(nil, &stubParentDirectory{err: errors.New("connection reset")}, nil)
	student := &model.Student{ID: 7, Name: "Ana Reyes"}

	err := svc.NotifyAttendance(context.Background(), student, "Algebra", "2026-08-28", model.AttendancePresent)

	assert.NoError(t, err)
}

func TestNotifyInvoiceUnlinkedStudent(t *testing.T) {
	svc := NewNotificationService(nil, &stubParentDirectory{err: pgx.ErrNoRows}, nil)
	student := &model.Student{ID: 7, Name: "Ana Reyes"}
	inv := &model.Invoice{InvoiceNo: "INV000001", Amount: 1500, DueDate: "2026-09-30"}

	err := svc.NotifyInvoice(context.Background(), student, inv)

	assert.NoError(t, err)
}

func TestNotifyInvoiceLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	svc := NewNotificationService(nil, &stubParentDirectory{err: lookupErr}, nil)
	student := &model.Student{ID: 7, Name: "Ana Reyes"}
	inv := &model.Invoice{InvoiceNo: "INV000001", Amount: 1500, DueDate: "2026-09-30"}

	err := svc.NotifyInvoice(context.Background(), student, inv)

	require.ErrorIs(t, err, lookupErr)
}

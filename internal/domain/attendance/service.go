package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/leave"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("no check-in recorded today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNothingToUpdate   = errors.New("no fields provided")
)

type DirectoryAPI interface {
	List(ctx context.Context) ([]directory.Employee, error)
}

type LeaveAPI interface {
	ApprovedCovering(ctx context.Context, day time.Time) ([]leave.LeaveRequest, error)
}

type Service struct {
	Store     StoreAPI
	Directory DirectoryAPI
	Leaves    LeaveAPI
}

func NewService(store StoreAPI, dir DirectoryAPI, leaves LeaveAPI) *Service {
	return &Service{Store: store, Directory: dir, Leaves: leaves}
}

// List returns attendance records visible to the caller. Non-privileged
// callers only see their own.
func (s *Service) List(ctx context.Context, caller auth.UserContext, userID string, day *time.Time) ([]Attendance, error) {
	if !auth.Privileged(caller.Role) {
		userID = caller.UserID
	}
	return s.Store.List(ctx, userID, day)
}

// CheckIn creates today's record for the caller with the current time.
func (s *Service) CheckIn(ctx context.Context, caller auth.UserContext, now time.Time) (Attendance, error) {
	_, err := s.Store.FindByUserAndDate(ctx, caller.UserID, now)
	if err == nil {
		return Attendance{}, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, ErrNotFound) {
		return Attendance{}, err
	}

	checkIn := now
	id, err := s.Store.Create(ctx, Attendance{
		UserID:      caller.UserID,
		Date:        now,
		CheckInTime: &checkIn,
		Status:      StatusPresent,
	})
	if err != nil {
		return Attendance{}, err
	}
	return s.Store.Get(ctx, id)
}

// CheckOut stamps the check-out time on today's record.
func (s *Service) CheckOut(ctx context.Context, caller auth.UserContext, now time.Time) (Attendance, error) {
	record, err := s.Store.FindByUserAndDate(ctx, caller.UserID, now)
	if errors.Is(err, ErrNotFound) {
		return Attendance{}, ErrNotCheckedIn
	}
	if err != nil {
		return Attendance{}, err
	}
	if record.CheckInTime == nil {
		return Attendance{}, ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return Attendance{}, ErrAlreadyCheckedOut
	}

	if err := s.Store.SetCheckOut(ctx, record.ID, now); err != nil {
		return Attendance{}, err
	}
	return s.Store.Get(ctx, record.ID)
}

type EditInput struct {
	CheckIn  string // "HH:mm", empty to leave unchanged
	CheckOut string
	Notes    *string
}

// Edit applies a partial correction to a record. Provided clock strings are
// combined with the record's date (falling back to the existing check-in's
// date, then to now); omitted fields keep their stored values.
func (s *Service) Edit(ctx context.Context, recordID string, input EditInput, now time.Time) (Attendance, error) {
	record, err := s.Store.Get(ctx, recordID)
	if err != nil {
		return Attendance{}, err
	}

	base := EditBase(record, now)

	var checkIn, checkOut *time.Time
	if clock := strings.TrimSpace(input.CheckIn); clock != "" {
		at, err := CombineClock(base, clock)
		if err != nil {
			return Attendance{}, err
		}
		checkIn = &at
	}
	if clock := strings.TrimSpace(input.CheckOut); clock != "" {
		at, err := CombineClock(base, clock)
		if err != nil {
			return Attendance{}, err
		}
		checkOut = &at
	}

	if checkIn == nil && checkOut == nil && input.Notes == nil {
		return Attendance{}, ErrNothingToUpdate
	}

	if err := s.Store.UpdateTimes(ctx, recordID, checkIn, checkOut, input.Notes); err != nil {
		return Attendance{}, err
	}
	return s.Store.Get(ctx, recordID)
}

// DailyOverview derives the tri-state status for every employee in the
// directory on the given date.
func (s *Service) DailyOverview(ctx context.Context, day time.Time) ([]DailyView, error) {
	employees, err := s.Directory.List(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.Store.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]Attendance, len(records))
	for _, record := range records {
		byUser[record.UserID] = record
	}

	approved, err := s.Leaves.ApprovedCovering(ctx, day)
	if err != nil {
		return nil, err
	}
	leavesByUser := make(map[string][]leave.LeaveRequest)
	for _, req := range approved {
		leavesByUser[req.UserID] = append(leavesByUser[req.UserID], req)
	}

	views := make([]DailyView, 0, len(employees))
	for _, employee := range employees {
		view := DailyView{
			UserID: employee.ID,
			Name:   employee.FullName(),
		}
		var record *Attendance
		if rec, ok := byUser[employee.ID]; ok {
			record = &rec
			view.CheckInTime = rec.CheckInTime
			view.CheckOutTime = rec.CheckOutTime
			view.Notes = rec.Notes
		}
		view.Status = DeriveDayStatus(record, leavesByUser[employee.ID], day)
		views = append(views, view)
	}
	return views, nil
}

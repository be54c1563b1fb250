package attendancehandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/transport/http/middleware"
)

type fakeAttendanceStore struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: map[string]attendance.Attendance{}}
}

func (f *fakeAttendanceStore) add(record attendance.Attendance) string {
	f.nextID++
	record.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[record.ID] = record
	return record.ID
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (f *fakeAttendanceStore) Get(_ context.Context, recordID string) (attendance.Attendance, error) {
	record, ok := f.records[recordID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	return record, nil
}

func (f *fakeAttendanceStore) FindByUserAndDate(_ context.Context, userID string, day time.Time) (attendance.Attendance, error) {
	for _, record := range f.records {
		if record.UserID == userID && sameDay(record.Date, day) {
			return record, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (f *fakeAttendanceStore) List(_ context.Context, userID string, day *time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, record := range f.records {
		if userID != "" && record.UserID != userID {
			continue
		}
		if day != nil && !sameDay(record.Date, *day) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByDate(_ context.Context, day time.Time) ([]attendance.Attendance, error) {
	return f.List(context.Background(), "", &day)
}

func (f *fakeAttendanceStore) Create(_ context.Context, record attendance.Attendance) (string, error) {
	return f.add(record), nil
}

func (f *fakeAttendanceStore) SetCheckOut(_ context.Context, recordID string, at time.Time) error {
	record, ok := f.records[recordID]
	if !ok {
		return attendance.ErrNotFound
	}
	record.CheckOutTime = &at
	f.records[recordID] = record
	return nil
}

func (f *fakeAttendanceStore) UpdateTimes(_ context.Context, recordID string, checkIn, checkOut *time.Time, notes *string) error {
	record, ok := f.records[recordID]
	if !ok {
		return attendance.ErrNotFound
	}
	if checkIn != nil {
		record.CheckInTime = checkIn
	}
	if checkOut != nil {
		record.CheckOutTime = checkOut
	}
	if notes != nil {
		record.Notes = *notes
	}
	f.records[recordID] = record
	return nil
}

type fakeDirectory struct {
	employees []directory.Employee
}

func (f *fakeDirectory) List(context.Context) ([]directory.Employee, error) {
	return f.employees, nil
}

type fakeLeaves struct {
	approved []leave.LeaveRequest
}

func (f *fakeLeaves) ApprovedCovering(_ context.Context, day time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.approved {
		if leave.Covers(req, day) {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeNotifyStore struct {
	created []string
}

func (f *fakeNotifyStore) CreateNotification(_ context.Context, userID, ntype, title, body string) error {
	f.created = append(f.created, ntype)
	return nil
}

func (f *fakeNotifyStore) ListNotifications(context.Context, string, int, int) ([]map[string]any, error) {
	return nil, nil
}
func (f *fakeNotifyStore) CountUnread(context.Context, string) (int, error)  { return 0, nil }
func (f *fakeNotifyStore) MarkRead(context.Context, string, string) error    { return nil }
func (f *fakeNotifyStore) UserEmail(context.Context, string) (string, error) { return "", nil }

func asUser(user auth.UserContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), user)))
		})
	}
}

func newRouter(store *fakeAttendanceStore, dir *fakeDirectory, leaves *fakeLeaves, notifyStore *fakeNotifyStore, user auth.UserContext, now time.Time) chi.Router {
	handler := NewHandler(
		attendance.NewService(store, dir, leaves),
		notifications.New(notifyStore, nil, false, ""),
	)
	handler.Now = func() time.Time { return now }

	r := chi.NewRouter()
	r.Use(asUser(user))
	handler.RegisterRoutes(r)
	return r
}

func TestCheckInThenDuplicateConflicts(t *testing.T) {
	store := newFakeAttendanceStore()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	router := newRouter(store, &fakeDirectory{}, &fakeLeaves{}, &fakeNotifyStore{},
		auth.UserContext{UserID: "u1", Role: auth.RoleEmployee}, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first check-in status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate check-in status = %d, want 409", rec.Code)
	}
}

func TestCheckOutWithoutCheckInConflicts(t *testing.T) {
	now := time.Date(2026, time.March, 2, 17, 0, 0, 0, time.UTC)
	router := newRouter(newFakeAttendanceStore(), &fakeDirectory{}, &fakeLeaves{}, &fakeNotifyStore{},
		auth.UserContext{UserID: "u1", Role: auth.RoleEmployee}, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/attendance/check-out", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestEditRequiresEditPermission(t *testing.T) {
	store := newFakeAttendanceStore()
	id := store.add(attendance.Attendance{UserID: "u1", Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)})
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	router := newRouter(store, &fakeDirectory{}, &fakeLeaves{}, &fakeNotifyStore{},
		auth.UserContext{UserID: "u1", Role: auth.RoleEmployee}, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/attendance/"+id,
		strings.NewReader(`{"checkInTime":"09:00"}`)))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestEditAnchorsClockToRecordDate(t *testing.T) {
	store := newFakeAttendanceStore()
	notifyStore := &fakeNotifyStore{}
	recordDate := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	id := store.add(attendance.Attendance{UserID: "u1", Date: recordDate, Status: attendance.StatusPresent})
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	router := newRouter(store, &fakeDirectory{}, &fakeLeaves{}, notifyStore,
		auth.UserContext{UserID: "hr", Role: auth.RoleHR}, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/attendance/"+id,
		strings.NewReader(`{"checkInTime":"09:15"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	stored := store.records[id]
	if stored.CheckInTime == nil {
		t.Fatal("check-in not stored")
	}
	want := time.Date(2026, time.March, 2, 9, 15, 0, 0, time.UTC)
	if !stored.CheckInTime.Equal(want) {
		t.Fatalf("check-in = %v, want %v", stored.CheckInTime, want)
	}
	if stored.CheckOutTime != nil {
		t.Fatal("check-out changed by partial edit")
	}
	if len(notifyStore.created) != 1 || notifyStore.created[0] != notifications.TypeAttendanceCorrected {
		t.Fatalf("notifications = %v, want one correction notice", notifyStore.created)
	}
}

func TestEditRejectsBadClock(t *testing.T) {
	store := newFakeAttendanceStore()
	id := store.add(attendance.Attendance{UserID: "u1", Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)})
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	router := newRouter(store, &fakeDirectory{}, &fakeLeaves{}, &fakeNotifyStore{},
		auth.UserContext{UserID: "hr", Role: auth.RoleHR}, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/attendance/"+id,
		strings.NewReader(`{"checkInTime":"9am"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestEditRejectsEmptyUpdate(t *testing.T) {
	store := newFakeAttendanceStore()
	id := store.add(attendance.Attendance{UserID: "u1", Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)})
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)

	router := newRouter(store, &fakeDirectory{}, &fakeLeaves{}, &fakeNotifyStore{},
		auth.UserContext{UserID: "hr", Role: auth.RoleHR}, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/attendance/"+id, strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDailyOverviewGatedAndDerived(t *testing.T) {
	store := newFakeAttendanceStore()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	store.add(attendance.Attendance{UserID: "u1", Date: day, CheckInTime: &checkIn, Status: attendance.StatusPresent})

	dir := &fakeDirectory{employees: []directory.Employee{
		{ID: "u1", FirstName: "Ana", LastName: "Ruiz"},
		{ID: "u2", FirstName: "Ben", LastName: "Cole"},
		{ID: "u3", FirstName: "Cam", LastName: "Diaz"},
	}}
	leaves := &fakeLeaves{approved: []leave.LeaveRequest{{
		UserID: "u2", Type: leave.TypeAnnual, Status: leave.StatusApproved,
		StartDate: day, EndDate: day.AddDate(0, 0, 2),
	}}}
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	employeeRouter := newRouter(store, dir, leaves, &fakeNotifyStore{},
		auth.UserContext{UserID: "u1", Role: auth.RoleEmployee}, now)
	rec := httptest.NewRecorder()
	employeeRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/daily?date=2026-03-02", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("employee daily status = %d, want 403", rec.Code)
	}

	managerRouter := newRouter(store, dir, leaves, &fakeNotifyStore{},
		auth.UserContext{UserID: "mgr", Role: auth.RoleManager}, now)
	rec = httptest.NewRecorder()
	managerRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/daily?date=2026-03-02", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("manager daily status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []attendance.DailyView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	statuses := map[string]string{}
	for _, view := range envelope.Data {
		statuses[view.UserID] = view.Status
	}
	if statuses["u1"] != attendance.DayPresent || statuses["u2"] != attendance.DayOnLeave || statuses["u3"] != attendance.DayAbsent {
		t.Fatalf("statuses = %v", statuses)
	}
}

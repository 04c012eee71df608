package assign_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomnin/AVB-SchedulingService/internal/domain"
	instructorRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/instructor"
	reservationRepo "github.com/dkomnin/AVB-SchedulingService/internal/infra/storage/reservation"
	"github.com/dkomnin/AVB-SchedulingService/internal/scheduling"
	"github.com/dkomnin/AVB-SchedulingService/pkg/ptr"
	"github.com/dkomnin/AVB-SchedulingService/pkg/types"
)

// --- fakes ---

type fakeReservationRepo struct {
	reservation   *domain.Reservation
	getErr        error
	updatedStatus domain.ReservationStatus
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.reservation, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus) error {
	f.updatedStatus = status
	return nil
}

type fakeSessionRepo struct {
	reservationSessions []*domain.ActivitySession
	instructorSessions  []*domain.ActivitySession
	vehicleSessions     []*domain.ActivitySession
	assigned            *domain.SessionAssignment
}

func (f *fakeSessionRepo) GetByReservationID(_ context.Context, _ int64) ([]*domain.ActivitySession, error) {
	return f.reservationSessions, nil
}

func (f *fakeSessionRepo) GetByInstructorAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.ActivitySession, error) {
	return f.instructorSessions, nil
}

func (f *fakeSessionRepo) GetByVehicleAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.ActivitySession, error) {
	return f.vehicleSessions, nil
}

func (f *fakeSessionRepo) AssignByReservation(_ context.Context, _ int64, assignment domain.SessionAssignment) ([]*domain.ActivitySession, error) {
	f.assigned = &assignment
	updated := make([]*domain.ActivitySession, 0, len(f.reservationSessions))
	for _, session := range f.reservationSessions {
		clone := *session
		clone.InstructorID = &assignment.InstructorID
		clone.SiteID = assignment.SiteID
		clone.VehicleID = assignment.VehicleID
		clone.Date = assignment.Date
		clone.StartTime = assignment.StartTime
		clone.DurationMinutes = assignment.DurationMinutes
		clone.Status = domain.SessionScheduled
		updated = append(updated, &clone)
	}
	return updated, nil
}

type fakeActivityRepo struct {
	activity *domain.Activity
	getErr   error
}

func (f *fakeActivityRepo) GetByID(_ context.Context, _ int64) (*domain.Activity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.activity, nil
}

type fakeInstructorRepo struct {
	instructor *domain.Instructor
	getErr     error
}

func (f *fakeInstructorRepo) GetByID(_ context.Context, _ int64) (*domain.Instructor, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.instructor, nil
}

type fakeResourceRepo struct {
	vehicle *domain.Vehicle
	site    *domain.Site
}

func (f *fakeResourceRepo) GetVehicleByID(_ context.Context, _ int64) (*domain.Vehicle, error) {
	return f.vehicle, nil
}

func (f *fakeResourceRepo) GetSiteByID(_ context.Context, _ int64) (*domain.Site, error) {
	return f.site, nil
}

type fakeTxManager struct {
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixture ---

type fixture struct {
	reservations *fakeReservationRepo
	sessions     *fakeSessionRepo
	activities   *fakeActivityRepo
	instructors  *fakeInstructorRepo
	resources    *fakeResourceRepo
	tx           *fakeTxManager
}

// 2026-06-15 is a Monday
var testDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	return &fixture{
		reservations: &fakeReservationRepo{
			reservation: &domain.Reservation{
				ID:               100,
				CompanyID:        1,
				ActivityID:       5,
				ParticipantCount: 2,
				Status:           domain.ReservationPending,
			},
		},
		sessions: &fakeSessionRepo{
			reservationSessions: []*domain.ActivitySession{
				{ID: 200, ReservationID: 100, ParticipantCount: 2, Status: domain.SessionPending},
			},
		},
		activities: &fakeActivityRepo{
			activity: &domain.Activity{
				ID:              5,
				CompanyID:       1,
				ActivityType:    "dive",
				DurationMinutes: 90,
				Active:          true,
			},
		},
		instructors: &fakeInstructorRepo{
			instructor: &domain.Instructor{
				ID:            10,
				CompanyID:     1,
				ActivityTypes: []string{"dive"},
				Availability: domain.AvailabilitySpec{
					Weekdays: []int{1, 2, 3, 4, 5},
					Hours:    []int{9, 10, 11, 14},
				},
				MaxSessionsPerDay: 4,
				Active:            true,
			},
		},
		resources: &fakeResourceRepo{
			vehicle: &domain.Vehicle{ID: 7, CompanyID: 1, CapacitySeats: 6, MaxWeightKg: 800, Active: true},
			site:    &domain.Site{ID: 3, CompanyID: 1, ActivityTypes: []string{"dive"}, Active: true},
		},
		tx: &fakeTxManager{},
	}
}

func (f *fixture) useCase() *UseCase {
	return NewUseCase(
		f.reservations, f.sessions, f.activities, f.instructors,
		f.resources, f.resources, f.tx, scheduling.DefaultPolicy(), nopLogger{},
	)
}

func baseRequest() *Request {
	return &Request{
		ReservationID: 100,
		CompanyID:     1,
		InstructorID:  10,
		Date:          testDate,
		StartTime:     types.TimeString("10:00"),
	}
}

// --- tests ---

func TestExecuteSuccess(t *testing.T) {
	f := newFixture()
	req := baseRequest()
	req.SiteID = ptr.Ptr(int64(3))
	req.VehicleID = ptr.Ptr(int64(7))

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ReservationID)
	assert.Equal(t, string(domain.ReservationScheduled), resp.Status)
	assert.Equal(t, int64(10), resp.InstructorID)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.Sessions[0].StartTime)
	assert.Equal(t, 90, resp.Sessions[0].DurationMinutes)

	// Назначение записано, статус брони обновлен
	require.NotNil(t, f.sessions.assigned)
	assert.Equal(t, int64(10), f.sessions.assigned.InstructorID)
	assert.Equal(t, domain.ReservationScheduled, f.reservations.updatedStatus)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture()

	req := baseRequest()
	req.InstructorID = 0
	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = baseRequest()
	req.StartTime = ""
	_, err = f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteReservationNotFound(t *testing.T) {
	f := newFixture()
	f.reservations.getErr = reservationRepo.ErrReservationNotFound

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecuteTenantMismatch(t *testing.T) {
	f := newFixture()
	f.reservations.reservation.CompanyID = 999

	// Чужая бронь неотличима от несуществующей
	_, err := f.useCase().Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecuteNotSchedulable(t *testing.T) {
	f := newFixture()
	f.reservations.reservation.Status = domain.ReservationCancelled

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrNotSchedulable)
}

func TestExecuteNoActiveSessions(t *testing.T) {
	f := newFixture()
	f.sessions.reservationSessions = []*domain.ActivitySession{
		{ID: 200, ReservationID: 100, Status: domain.SessionCancelled},
	}

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrNoSessions)
}

func TestExecuteInstructorInactive(t *testing.T) {
	f := newFixture()
	f.instructors.instructor.Active = false

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrInstructorInactive)
}

func TestExecuteInstructorNotFound(t *testing.T) {
	f := newFixture()
	f.instructors.getErr = instructorRepo.ErrInstructorNotFound

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrInstructorNotFound)
}

func TestExecuteQualificationFailure(t *testing.T) {
	f := newFixture()
	f.instructors.instructor.ActivityTypes = []string{"snorkel"}

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	require.Error(t, err)
	reason, ok := scheduling.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, scheduling.ReasonQualification, reason)
}

func TestExecuteAddOnCertificationFailure(t *testing.T) {
	f := newFixture()
	f.reservations.reservation.AddOns = []string{"night_dive"}
	f.activities.activity.Constraints = &domain.ActivityConstraints{
		AddOnCertifications: map[string][]string{"night_dive": {"night-cert"}},
	}

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	require.Error(t, err)
	reason, _ := scheduling.ReasonOf(err)
	assert.Equal(t, scheduling.ReasonQualification, reason)
	assert.Contains(t, err.Error(), "night-cert")
}

func TestExecuteAvailabilityFailure(t *testing.T) {
	f := newFixture()
	req := baseRequest()
	req.StartTime = types.TimeString("19:00")

	_, err := f.useCase().Execute(context.Background(), req)
	require.Error(t, err)
	reason, _ := scheduling.ReasonOf(err)
	assert.Equal(t, scheduling.ReasonAvailability, reason)
}

func TestExecuteDailyLimitFailure(t *testing.T) {
	f := newFixture()
	f.instructors.instructor.MaxSessionsPerDay = 2
	f.sessions.instructorSessions = []*domain.ActivitySession{
		{ID: 301, InstructorID: ptr.Ptr(int64(10)), Date: testDate, StartTime: "09:00", Status: domain.SessionScheduled},
		{ID: 302, InstructorID: ptr.Ptr(int64(10)), Date: testDate, StartTime: "14:00", Status: domain.SessionScheduled},
	}

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	require.Error(t, err)
	reason, _ := scheduling.ReasonOf(err)
	assert.Equal(t, scheduling.ReasonDailyLimit, reason)
}

func TestExecuteBufferFailure(t *testing.T) {
	f := newFixture()
	f.sessions.instructorSessions = []*domain.ActivitySession{
		{ID: 301, InstructorID: ptr.Ptr(int64(10)), Date: testDate, StartTime: "10:00", Status: domain.SessionScheduled},
	}

	// 10:15 - слишком близко к существующему занятию
	req := baseRequest()
	req.StartTime = types.TimeString("10:15")
	_, err := f.useCase().Execute(context.Background(), req)
	require.Error(t, err)
	reason, _ := scheduling.ReasonOf(err)
	assert.Equal(t, scheduling.ReasonBufferTime, reason)

	// 10:30 - ровно буфер, проходит (доступный час по окну инструктора)
	req.StartTime = types.TimeString("10:30")
	_, err = f.useCase().Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteVehicleCapacityFailure(t *testing.T) {
	f := newFixture()
	// 4 места, одно у водителя; конкурентное занятие в окне везет 2 человек
	f.resources.vehicle = &domain.Vehicle{ID: 7, CompanyID: 1, CapacitySeats: 4, MaxWeightKg: 5000, Active: true}
	f.sessions.vehicleSessions = []*domain.ActivitySession{
		{ID: 400, ReservationID: 999, VehicleID: ptr.Ptr(int64(7)), Date: testDate, StartTime: "10:00",
			ParticipantCount: 2, Status: domain.SessionScheduled},
	}
	// Бронь на 1 участника + инструктор = 2 места, свободно 3-2=1
	f.reservations.reservation.ParticipantCount = 1
	f.sessions.reservationSessions[0].ParticipantCount = 1

	req := baseRequest()
	req.VehicleID = ptr.Ptr(int64(7))

	_, err := f.useCase().Execute(context.Background(), req)
	require.Error(t, err)
	reason, _ := scheduling.ReasonOf(err)
	assert.Equal(t, scheduling.ReasonCapacity, reason)
	assert.Contains(t, err.Error(), "available=1, needed=2")
}

func TestExecuteVehicleExcludesOwnReservation(t *testing.T) {
	f := newFixture()
	f.resources.vehicle = &domain.Vehicle{ID: 7, CompanyID: 1, CapacitySeats: 4, MaxWeightKg: 5000, Active: true}
	// Прежнее занятие этой же брони уже числится на транспорте
	f.sessions.vehicleSessions = []*domain.ActivitySession{
		{ID: 200, ReservationID: 100, VehicleID: ptr.Ptr(int64(7)), Date: testDate, StartTime: "10:00",
			ParticipantCount: 2, Status: domain.SessionScheduled},
	}
	f.reservations.reservation.Status = domain.ReservationAuthorized
	f.reservations.reservation.ParticipantCount = 1
	f.sessions.reservationSessions[0].ParticipantCount = 1

	req := baseRequest()
	req.VehicleID = ptr.Ptr(int64(7))

	// Без исключения собственного вклада это было бы отказом по местам
	_, err := f.useCase().Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteMissingRequiredField(t *testing.T) {
	f := newFixture()
	f.activities.activity.Constraints = &domain.ActivityConstraints{
		RequiredFields: []string{"medical_clearance"},
	}
	f.reservations.reservation.Participants = []domain.Participant{
		{Metadata: map[string]string{}},
	}

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	require.Error(t, err)
	reason, _ := scheduling.ReasonOf(err)
	assert.Equal(t, scheduling.ReasonConfigError, reason)
	assert.False(t, scheduling.IsConstraintViolation(err))
}

func TestExecuteSiteNotSuitable(t *testing.T) {
	f := newFixture()
	f.resources.site = &domain.Site{ID: 3, CompanyID: 1, ActivityTypes: []string{"surf"}, Active: true}

	req := baseRequest()
	req.SiteID = ptr.Ptr(int64(3))

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSiteNotSuitable)
}

func TestExecuteSerializationConflict(t *testing.T) {
	f := newFixture()
	f.tx.commitErr = &pq.Error{Code: "40001"}

	_, err := f.useCase().Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrAssignmentConflict)
}

package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	"github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
	"github.com/m04kA/SMC-FacilityService/pkg/txmanager"
)

// Стабы зависимостей

type stubReservationRepo struct {
	create        func(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	listOccupancy func(ctx context.Context, roomID int64, date time.Time) ([]domain.SlotOccupancy, error)
}

func (s *stubReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	return s.create(ctx, reservation)
}

func (s *stubReservationRepo) ListOccupancyForDate(ctx context.Context, roomID int64, date time.Time) ([]domain.SlotOccupancy, error) {
	return s.listOccupancy(ctx, roomID, date)
}

type stubRoomRepo struct {
	getByID           func(ctx context.Context, id int64) (*domain.Room, error)
	getRateTable      func(ctx context.Context, roomID int64) (*domain.RoomRateTable, error)
	getEquipmentByIDs func(ctx context.Context, roomID int64, ids []int64) ([]*domain.Equipment, error)
}

func (s *stubRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return s.getByID(ctx, id)
}

func (s *stubRoomRepo) GetRateTable(ctx context.Context, roomID int64) (*domain.RoomRateTable, error) {
	return s.getRateTable(ctx, roomID)
}

func (s *stubRoomRepo) GetEquipmentByIDs(ctx context.Context, roomID int64, ids []int64) ([]*domain.Equipment, error) {
	return s.getEquipmentByIDs(ctx, roomID, ids)
}

type stubCalendar struct {
	weekendOrHoliday bool
	err              error
}

func (s *stubCalendar) IsWeekendOrHoliday(context.Context, time.Time) (bool, error) {
	return s.weekendOrHoliday, s.err
}

type stubMemberClient struct {
	member *memberservice.Member
	err    error
}

func (s *stubMemberClient) GetMemberWithGracefulDegradation(context.Context, int64) (*memberservice.Member, error) {
	return s.member, s.err
}

// stubTxManager выполняет функцию без транзакции либо возвращает заданную ошибку
type stubTxManager struct {
	err error
}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общие данные

var testNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func futureDate() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func defaultRoom() *domain.Room {
	return &domain.Room{
		ID:                        1,
		Name:                      "Большой зал",
		MaxConcurrentReservations: 1,
		Active:                    true,
	}
}

func defaultRateTable() *domain.RoomRateTable {
	return &domain.RoomRateTable{
		RoomID: 1,
		Weekday: domain.RateSet{
			Morning:          15000,
			Afternoon:        20000,
			Evening:          18000,
			MiddayExtension:  3000,
			EveningExtension: 3000,
		},
		AirconPricePerHour: 1000,
	}
}

func activeMember() *memberservice.Member {
	return &memberservice.Member{
		ID:     7,
		Name:   "Иванов Иван",
		Role:   memberservice.RoleMember,
		Active: true,
	}
}

type useCaseDeps struct {
	reservations *stubReservationRepo
	rooms        *stubRoomRepo
	calendar     *stubCalendar
	members      *stubMemberClient
	tx           *stubTxManager
}

func defaultDeps() *useCaseDeps {
	return &useCaseDeps{
		reservations: &stubReservationRepo{
			create: func(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
				created := *reservation
				created.ID = 100
				for i := range created.Usages {
					created.Usages[i].ID = int64(200 + i)
					created.Usages[i].ReservationID = created.ID
				}
				return &created, nil
			},
			listOccupancy: func(context.Context, int64, time.Time) ([]domain.SlotOccupancy, error) {
				return nil, nil
			},
		},
		rooms: &stubRoomRepo{
			getByID: func(context.Context, int64) (*domain.Room, error) {
				return defaultRoom(), nil
			},
			getRateTable: func(context.Context, int64) (*domain.RoomRateTable, error) {
				return defaultRateTable(), nil
			},
			getEquipmentByIDs: func(context.Context, int64, []int64) ([]*domain.Equipment, error) {
				return nil, nil
			},
		},
		calendar: &stubCalendar{},
		members:  &stubMemberClient{member: activeMember()},
		tx:       &stubTxManager{},
	}
}

func newTestUseCase(deps *useCaseDeps) *UseCase {
	uc := NewUseCase(deps.reservations, deps.rooms, deps.calendar, deps.members, deps.tx, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func baseRequest() *Request {
	return &Request{
		MemberID:        7,
		Purpose:         "Репетиция оркестра",
		EntranceFeeType: "free",
		Usages: []UsageRequest{
			{RoomID: 1, Date: futureDate(), Morning: true},
		},
	}
}

// Тесты

func TestExecute_CreatesReservation(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	resp, err := uc.Execute(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, int64(15000), resp.TotalCharge)
	require.NotNil(t, resp.MemberName)
	assert.Equal(t, "Иванов Иван", *resp.MemberName)

	require.Len(t, resp.Usages, 1)
	usage := resp.Usages[0]
	assert.Equal(t, "Большой зал", usage.RoomName)
	assert.Equal(t, 1.0, usage.TicketMultiplier)
	assert.Equal(t, int64(15000), usage.Charge.RoomBeforeMultiplier)
	assert.Equal(t, int64(15000), usage.Charge.Subtotal)
}

func TestExecute_PaidEntranceMultipliesRoomOnly(t *testing.T) {
	deps := defaultDeps()
	deps.rooms.getEquipmentByIDs = func(context.Context, int64, []int64) ([]*domain.Equipment, error) {
		return []*domain.Equipment{
			{ID: 3, RoomID: 1, Name: "Проектор", PriceType: domain.EquipmentPricePerSlot, UnitPrice: 500, MaxQuantity: 2, Active: true},
		}, nil
	}
	uc := newTestUseCase(deps)

	req := baseRequest()
	req.EntranceFeeType = "paid"
	req.EntranceFee = 2000
	req.Usages[0].Equipment = []EquipmentRequest{{EquipmentID: 3, Quantity: 1}}

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	usage := resp.Usages[0]
	assert.Equal(t, 1.5, usage.TicketMultiplier)
	assert.Equal(t, int64(15000), usage.Charge.RoomBeforeMultiplier)
	assert.Equal(t, int64(22500), usage.Charge.RoomAfterMultiplier)
	// Оборудование не умножается на коэффициент
	assert.Equal(t, int64(500), usage.Charge.Equipment)
	assert.Equal(t, int64(23000), resp.TotalCharge)
}

func TestExecute_WeekendRatesApplied(t *testing.T) {
	deps := defaultDeps()
	deps.calendar.weekendOrHoliday = true
	table := defaultRateTable()
	table.Weekend = &domain.RateSet{Morning: 25000, Afternoon: 30000, Evening: 28000, MiddayExtension: 5000, EveningExtension: 5000}
	deps.rooms.getRateTable = func(context.Context, int64) (*domain.RoomRateTable, error) {
		return table, nil
	}
	uc := newTestUseCase(deps)

	resp, err := uc.Execute(context.Background(), baseRequest())

	require.NoError(t, err)
	usage := resp.Usages[0]
	assert.True(t, usage.WeekendOrHoliday)
	assert.Equal(t, int64(25000), usage.Charge.RoomBeforeMultiplier)
}

func TestExecute_SlotConflict(t *testing.T) {
	deps := defaultDeps()
	deps.reservations.listOccupancy = func(context.Context, int64, time.Time) ([]domain.SlotOccupancy, error) {
		return []domain.SlotOccupancy{{ReservationID: 55, Morning: true}}, nil
	}
	uc := newTestUseCase(deps)

	resp, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, resp)
}

// Частичный конфликт отклоняет заявку целиком: свободного дневного слота недостаточно
func TestExecute_PartialConflictRejectsWholeRequest(t *testing.T) {
	deps := defaultDeps()
	deps.reservations.listOccupancy = func(context.Context, int64, time.Time) ([]domain.SlotOccupancy, error) {
		return []domain.SlotOccupancy{{ReservationID: 55, Morning: true}}, nil
	}
	uc := newTestUseCase(deps)

	req := baseRequest()
	req.Usages[0].Afternoon = true

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

// Конфликт сериализации транзакций наружу выглядит как занятый слот
func TestExecute_SerializationConflictMapsToSlotNotAvailable(t *testing.T) {
	deps := defaultDeps()
	deps.tx.err = fmt.Errorf("tx failed: %w", txmanager.ErrSerializationFailure)
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

// При недоступном MemberService бронирование создаётся без имени участника
func TestExecute_MemberServiceDegraded(t *testing.T) {
	deps := defaultDeps()
	deps.members.member = nil
	deps.members.err = fmt.Errorf("%w: timeout", memberservice.ErrServiceDegraded)
	uc := newTestUseCase(deps)

	resp, err := uc.Execute(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.Nil(t, resp.MemberName)
	assert.Equal(t, int64(100), resp.ID)
}

func TestExecute_MemberNotFound(t *testing.T) {
	deps := defaultDeps()
	deps.members.member = nil
	deps.members.err = memberservice.ErrMemberNotFound
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_MemberInactive(t *testing.T) {
	deps := defaultDeps()
	member := activeMember()
	member.Active = false
	deps.members.member = member
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrMemberInactive)
}

func TestExecute_RoomNotFound(t *testing.T) {
	deps := defaultDeps()
	deps.rooms.getByID = func(context.Context, int64) (*domain.Room, error) {
		return nil, roomRepo.ErrRoomNotFound
	}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_RoomNotBookable(t *testing.T) {
	deps := defaultDeps()
	deps.rooms.getByID = func(context.Context, int64) (*domain.Room, error) {
		room := defaultRoom()
		room.Active = false
		return room, nil
	}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrRoomNotBookable)
}

func TestExecute_RateTableMissing(t *testing.T) {
	deps := defaultDeps()
	deps.rooms.getRateTable = func(context.Context, int64) (*domain.RoomRateTable, error) {
		return nil, roomRepo.ErrRateTableNotFound
	}
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrRateTableNotFound)
}

func TestExecute_EquipmentValidation(t *testing.T) {
	catalog := []*domain.Equipment{
		{ID: 3, RoomID: 1, Name: "Проектор", PriceType: domain.EquipmentPricePerSlot, UnitPrice: 500, MaxQuantity: 2, Active: true},
		{ID: 4, RoomID: 1, Name: "Сцена", PriceType: domain.EquipmentPriceFlat, UnitPrice: 5000, MaxQuantity: 1, Active: false},
	}

	tests := []struct {
		name      string
		equipment []EquipmentRequest
		wantErr   error
	}{
		{
			name:      "неизвестная позиция каталога",
			equipment: []EquipmentRequest{{EquipmentID: 99, Quantity: 1}},
			wantErr:   ErrEquipmentNotFound,
		},
		{
			name:      "позиция выведена из каталога",
			equipment: []EquipmentRequest{{EquipmentID: 4, Quantity: 1}},
			wantErr:   ErrEquipmentNotOrderable,
		},
		{
			name:      "превышение количества",
			equipment: []EquipmentRequest{{EquipmentID: 3, Quantity: 3}},
			wantErr:   ErrEquipmentQuantityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := defaultDeps()
			deps.rooms.getEquipmentByIDs = func(context.Context, int64, []int64) ([]*domain.Equipment, error) {
				return catalog, nil
			}
			uc := newTestUseCase(deps)

			req := baseRequest()
			req.Usages[0].Equipment = tt.equipment

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "нет основных блоков",
			mutate:  func(req *Request) { req.Usages[0].Morning = false },
			wantErr: ErrNoMainSlot,
		},
		{
			name: "осиротевшая дневная вставка",
			mutate: func(req *Request) {
				req.Usages[0].Morning = false
				req.Usages[0].Evening = true
				req.Usages[0].MiddayExtension = true
			},
			wantErr: ErrOrphanMiddayExtension,
		},
		{
			name: "осиротевшая вечерняя вставка",
			mutate: func(req *Request) {
				req.Usages[0].EveningExtension = true
			},
			wantErr: ErrOrphanEveningExtension,
		},
		{
			name:    "дата в прошлом",
			mutate:  func(req *Request) { req.Usages[0].Date = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "пустая цель использования",
			mutate:  func(req *Request) { req.Purpose = "   " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "ненулевая плата при бесплатном входе",
			mutate:  func(req *Request) { req.EntranceFee = 1000 },
			wantErr: ErrInvalidInput,
		},
		{
			name: "дубль зала на дату",
			mutate: func(req *Request) {
				req.Usages = append(req.Usages, UsageRequest{RoomID: 1, Date: futureDate(), Afternoon: true})
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "часы кондиционера без запроса кондиционера",
			mutate: func(req *Request) {
				req.Usages[0].AirconHours = ptr.Ptr(2.0)
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(defaultDeps())

			req := baseRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Бронирование на сегодняшнюю дату допускается
func TestExecute_TodayIsAllowed(t *testing.T) {
	deps := defaultDeps()
	uc := newTestUseCase(deps)

	req := baseRequest()
	req.Usages[0].Date = time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
}

// Несколько дней использования суммируются в общий итог
func TestExecute_MultipleUsages(t *testing.T) {
	deps := defaultDeps()
	deps.rooms.getByID = func(_ context.Context, id int64) (*domain.Room, error) {
		room := defaultRoom()
		room.ID = id
		return room, nil
	}
	uc := newTestUseCase(deps)

	req := baseRequest()
	req.Usages = append(req.Usages, UsageRequest{
		RoomID:    1,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		Afternoon: true,
		Evening:   true,
	})

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Usages, 2)
	// 15000 + (20000 + 18000)
	assert.Equal(t, int64(53000), resp.TotalCharge)
}

func TestExecute_CalendarFailure(t *testing.T) {
	deps := defaultDeps()
	deps.calendar.err = errors.New("redis down")
	uc := newTestUseCase(deps)

	_, err := uc.Execute(context.Background(), baseRequest())

	assert.ErrorIs(t, err, ErrInternal)
}

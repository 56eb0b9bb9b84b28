package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	roomRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/room"
	memberClient "github.com/m04kA/SMC-FacilityService/internal/integrations/memberservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/rooms/models"
)

// Service сервис для работы с каталогом залов
type Service struct {
	roomRepo     RoomRepository
	memberClient MemberServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса залов
func NewService(
	roomRepo RoomRepository,
	memberClient MemberServiceClient,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:     roomRepo,
		memberClient: memberClient,
		logger:       logger,
	}
}

// ListRooms возвращает каталог залов с таблицами расценок и оборудованием
func (s *Service) ListRooms(ctx context.Context, includeInactive bool) (*models.RoomListResponse, error) {
	s.logger.Info("ListRooms: fetching rooms, includeInactive=%v", includeInactive)

	roomList, err := s.roomRepo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("ListRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}

	resp := &models.RoomListResponse{
		Rooms: make([]models.RoomResponse, 0, len(roomList)),
	}

	for _, room := range roomList {
		roomResp, err := s.buildRoomResponse(ctx, room)
		if err != nil {
			return nil, err
		}
		resp.Rooms = append(resp.Rooms, *roomResp)
	}

	s.logger.Info("ListRooms: successfully fetched %d rooms", len(resp.Rooms))
	return resp, nil
}

// GetRoom возвращает зал с таблицей расценок и оборудованием
func (s *Service) GetRoom(ctx context.Context, roomID int64) (*models.RoomResponse, error) {
	s.logger.Info("GetRoom: fetching room id=%d", roomID)

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetRoom: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoom: repository error for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %v", ErrInternal, err)
	}

	return s.buildRoomResponse(ctx, room)
}

// UpdateRateTable создаёт или заменяет таблицу расценок зала
// Доступно только сотрудникам
func (s *Service) UpdateRateTable(ctx context.Context, roomID int64, req *models.UpdateRateTableRequest) (*models.RateTableResponse, error) {
	s.logger.Info("UpdateRateTable: updating rates for room id=%d by staff=%d", roomID, req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		s.logger.Warn("UpdateRateTable: invalid rates for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем существование зала
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("UpdateRateTable: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("UpdateRateTable: repository error for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: UpdateRateTable - repository error: %v", ErrInternal, err)
	}

	saved, err := s.roomRepo.UpsertRateTable(ctx, req.ToDomainRateTable(roomID))
	if err != nil {
		s.logger.Error("UpdateRateTable: repository error for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: UpdateRateTable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRateTable: successfully updated rates for room id=%d", roomID)
	return models.FromDomainRateTable(saved), nil
}

// Вспомогательные методы

// buildRoomResponse собирает полный ответ по залу: расценки + каталог оборудования
func (s *Service) buildRoomResponse(ctx context.Context, room *domain.Room) (*models.RoomResponse, error) {
	table, err := s.roomRepo.GetRateTable(ctx, room.ID)
	if err != nil {
		if !errors.Is(err, roomRepo.ErrRateTableNotFound) {
			s.logger.Error("buildRoomResponse: rate table error for room id=%d: %v", room.ID, err)
			return nil, fmt.Errorf("%w: buildRoomResponse - repository error: %v", ErrInternal, err)
		}
		// Зал без расценок отдаём без таблицы
		table = nil
	}

	equipment, err := s.roomRepo.GetEquipment(ctx, room.ID, false)
	if err != nil {
		s.logger.Error("buildRoomResponse: equipment error for room id=%d: %v", room.ID, err)
		return nil, fmt.Errorf("%w: buildRoomResponse - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoom(room, table, equipment), nil
}

// checkStaffAccess проверяет, что участник является действующим сотрудником
func (s *Service) checkStaffAccess(ctx context.Context, staffID int64) error {
	member, err := s.memberClient.GetMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			s.logger.Warn("checkStaffAccess: member id=%d not found", staffID)
			return ErrMemberNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get member id=%d: %v", staffID, err)
		return fmt.Errorf("%w: checkStaffAccess - member service error: %v", ErrInternal, err)
	}

	if !member.Active || !member.IsStaff() {
		s.logger.Warn("checkStaffAccess: member id=%d is not an active staff member", staffID)
		return ErrAccessDenied
	}

	return nil
}

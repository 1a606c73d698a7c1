package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	roomID      = "3f2504e0-4f89-41d3-9a0c-000000000001"
	otherRoomID = "3f2504e0-4f89-41d3-9a0c-000000000002"
)

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		want      dto.RoomResponse
		wantErr   error
	}{
		{
			name: "cache hit",
			setupMock: func(_ *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "room:get:"+roomID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.RoomResponse)
						res.ID = roomID
						res.RoomNumber = "R101"

						return nil
					})
			},
			want: dto.RoomResponse{ID: roomID, RoomNumber: "R101"},
		},
		{
			name: "from database",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				cache.EXPECT().Save(gomock.Any(), "room:get:"+roomID, gomock.Any(), 3600).Return(nil).AnyTimes()
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{
					ID:           roomID,
					RoomNumber:   "R101",
					Price:        100,
					StatusID:     model.StatusAvailable,
					CategoryName: model.CategoryStandard,
				}, nil)
			},
			want: dto.RoomResponse{
				ID:         roomID,
				RoomNumber: "R101",
				Category:   model.CategoryStandard,
				Price:      100,
				StatusID:   int(model.StatusAvailable),
				Status:     "Available",
				Metadata: gDto.Metadata{
					CreatedAt: timezone.Format(model.Room{}.CreatedAt, constant.DateFormat),
					UpdatedAt: timezone.Format(model.Room{}.UpdatedAt, constant.DateFormat),
				},
			},
		},
		{
			name: "not found",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr: bookingModel.ErrRoomNotFound,
		},
		{
			name:      "malformed id is not looked up",
			id:        "R101",
			setupMock: func(_ *roomMocks.MockRoom, _ *cacheMocks.MockRedisCache) {},
			wantErr:   bookingModel.ErrRoomNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			id := tt.id
			if id == "" {
				id = roomID
			}

			got, err := svc.Get(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoomService_GetAvailability(t *testing.T) {
	checkIn := timezone.Today().AddDate(0, 0, 7)
	checkOut := checkIn.AddDate(0, 0, 2)

	valid := dto.AvailabilityRequest{
		CheckIn:  checkIn.Format(constant.DateOnlyFormat),
		CheckOut: checkOut.Format(constant.DateOnlyFormat),
		Category: model.CategoryDeluxe,
	}

	t.Run("prices every available room", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
				assert.Equal(t, "rooms.room_number", params.SortBy)
				assert.Zero(t, params.Limit)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "NOT EXISTS")
				assert.Contains(t, where, "room_categories.name = :category_name")
				assert.Equal(t, model.CategoryDeluxe, args["category_name"])

				return []model.Room{
					{ID: roomID, RoomNumber: "R101", Price: 100},
					{ID: otherRoomID, RoomNumber: "R102", Price: 150.25},
				}, nil
			})

		res, err := svc.GetAvailability(context.Background(), valid)
		require.NoError(t, err)

		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 2, res.Rooms[0].Nights)
		assert.InDelta(t, 200.0, res.Rooms[0].TotalAmount, 0.001)
		assert.InDelta(t, 300.5, res.Rooms[1].TotalAmount, 0.001)
	})

	t.Run("check out before check in", func(t *testing.T) {
		svc, _, _ := newService(t)

		req := valid
		req.CheckOut = checkIn.AddDate(0, 0, -1).Format(constant.DateOnlyFormat)

		_, err := svc.GetAvailability(context.Background(), req)
		assert.ErrorIs(t, err, bookingModel.ErrInvalidDateRange)
	})

	t.Run("past check in", func(t *testing.T) {
		svc, _, _ := newService(t)

		req := valid
		req.CheckIn = timezone.Today().AddDate(0, 0, -1).Format(constant.DateOnlyFormat)

		_, err := svc.GetAvailability(context.Background(), req)
		assert.ErrorIs(t, err, bookingModel.ErrCheckInPast)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.GetAvailability(context.Background(), valid)
		assert.Error(t, err)
	})
}

package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	"homestay/infras/otel/mocks"
	guestMocks "homestay/internal/domains/guest/mocks"
	"homestay/internal/domains/guest/model"
	"homestay/internal/domains/guest/model/dto"
	"homestay/internal/domains/guest/service"
	cacheMocks "homestay/shared/cache/mocks"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/timezone"
)

type fixture struct {
	repo *guestMocks.MockGuest
	svc  service.Guest
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := guestMocks.NewMockGuest(ctrl)
	cch := cacheMocks.NewMockRedisCache(ctrl)

	// Cache writes and invalidations run on detached goroutines; they are
	// not the behavior under test.
	cch.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	cch.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		repo: repo,
		svc:  service.New(repo, &config.Config{}, cch, mocks.NewOtel()),
	}
}

func createRequest() dto.CreateGuestRequest {
	return dto.CreateGuestRequest{
		FullName:          "Jane Guest",
		Email:             "Jane@Example.com",
		Phone:             "+6281234567890",
		VisitDate:         "2026-09-15",
		AccommodationType: "Authentic Homestay",
	}
}

func TestGuestService_Create(t *testing.T) {
	t.Run("creates a guest with active default status and lowercased email", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, guest model.Guest) error {
				assert.Equal(t, model.StatusActive, guest.Status)
				assert.Equal(t, "jane@example.com", guest.Email)

				return nil
			})

		res, err := f.svc.Create(context.Background(), createRequest())

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", res.Email)
		assert.Equal(t, model.StatusActive, res.Status)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "email already registered", err.Error())
	})
}

func TestGuestService_Update(t *testing.T) {
	id := "guest-id-123"

	t.Run("rejects an empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{}, id)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("checks email uniqueness against other guests only", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
				assert.Len(t, filter.Filters, 2)

				exclusion, ok := filter.Filters[1].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, gDto.FilterOperatorNotEq, exclusion.Operator)
				assert.Equal(t, id, exclusion.Value)

				return true, nil
			})

		_, err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{Email: "taken@example.com"}, id)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("parses the visit date into the update", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, model.FieldVisitDate)
				assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{
			ID:        id,
			Email:     "jane@example.com",
			Status:    model.StatusCompleted,
			VisitDate: timezone.Now(),
		}, nil)

		res, err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{
			VisitDate: "2026-09-20",
			Status:    model.StatusCompleted,
		}, id)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, res.Status)
	})

	t.Run("returns not found for unknown guests", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{Phone: "+628111"}, id)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGuestService_Statistics(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(7, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil).Times(3)

	res, err := f.svc.Statistics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, 7, res.Active)
	assert.Equal(t, 3, res.Completed)
	assert.Equal(t, 2, res.ByStatus[model.StatusInactive])
	assert.Len(t, res.ByAccommodationType, 3)
	assert.Equal(t, 4, res.ByAccommodationType["Authentic Homestay"])
}

func TestGuestService_Delete(t *testing.T) {
	t.Run("deletes an existing guest", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "guest-id-123"))
	})

	t.Run("returns not found for unknown guests", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

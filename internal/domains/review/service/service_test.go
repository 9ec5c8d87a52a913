package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	"homestay/infras/otel/mocks"
	reviewMocks "homestay/internal/domains/review/mocks"
	"homestay/internal/domains/review/model"
	"homestay/internal/domains/review/model/dto"
	"homestay/internal/domains/review/service"
	cacheMocks "homestay/shared/cache/mocks"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
)

type fixture struct {
	repo  *reviewMocks.MockReview
	cache *cacheMocks.MockRedisCache
	svc   service.Review
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := reviewMocks.NewMockReview(ctrl)
	cch := cacheMocks.NewMockRedisCache(ctrl)

	cch.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	cch.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		repo:  repo,
		cache: cch,
		svc:   service.New(repo, &config.Config{}, cch, mocks.NewOtel()),
	}
}

func pendingReview() model.Review {
	return model.Review{
		ID:       "review-id-123",
		FullName: "Jane Guest",
		Email:    "jane@example.com",
		Location: "Jakarta",
		Review:   "A wonderful stay in the mountains.",
		Rating:   5,
		Status:   model.StatusPending,
	}
}

func TestReviewService_Create(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, review model.Review) error {
			assert.Equal(t, model.StatusPending, review.Status)
			assert.False(t, review.IsApproved)
			assert.Equal(t, 5, review.Rating)

			return nil
		})

	res, err := f.svc.Create(context.Background(), dto.CreateReviewRequest{
		FullName: "Jane Guest",
		Email:    "Jane@Example.com",
		Location: "Jakarta",
		Review:   "A wonderful stay in the mountains.",
	})

	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.Email)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestReviewService_Moderation(t *testing.T) {
	tests := []struct {
		name         string
		run          func(svc service.Review) (dto.ReviewResponse, error)
		wantStatus   string
		wantApproved bool
	}{
		{
			name: "approve sets status and flag together",
			run: func(svc service.Review) (dto.ReviewResponse, error) {
				return svc.Approve(context.Background(), "review-id-123")
			},
			wantStatus:   model.StatusApproved,
			wantApproved: true,
		},
		{
			name: "reject sets status and flag together",
			run: func(svc service.Review) (dto.ReviewResponse, error) {
				return svc.Reject(context.Background(), "review-id-123")
			},
			wantStatus:   model.StatusRejected,
			wantApproved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			moderated := pendingReview()
			moderated.Status = tt.wantStatus
			moderated.IsApproved = tt.wantApproved

			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Equal(t, tt.wantStatus, fields[model.FieldStatus])

					flag, ok := fields[model.FieldIsApproved].(*bool)
					assert.True(t, ok)
					assert.Equal(t, tt.wantApproved, *flag)

					return nil
				})
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(moderated, nil)

			res, err := tt.run(f.svc)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantApproved, res.IsApproved)
		})
	}
}

func TestReviewService_ModerationNotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := f.svc.Approve(context.Background(), "missing-id")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

// The public listing must require status and flag to agree.
func TestReviewService_GetApprovedFiltersBothFields(t *testing.T) {
	f := newFixture(t)

	assertBothFields := func(filter gDto.FilterGroup) {
		assert.Len(t, filter.Filters, 2)

		statusFilter, ok := filter.Filters[0].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, model.FieldStatus, statusFilter.Field)
		assert.Equal(t, model.StatusApproved, statusFilter.Value)

		flagFilter, ok := filter.Filters[1].(gDto.Filter)
		assert.True(t, ok)
		assert.Equal(t, model.FieldIsApproved, flagFilter.Field)
		assert.Equal(t, true, flagFilter.Value)
	}

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assertBothFields(filter)

			return 1, nil
		})

	approved := pendingReview()
	approved.Status = model.StatusApproved
	approved.IsApproved = true

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Review, error) {
			assertBothFields(filter)

			return []model.Review{approved}, nil
		})

	res, err := f.svc.GetApproved(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, model.StatusApproved, res.Items[0].Status)
}

func TestReviewService_Update(t *testing.T) {
	f := newFixture(t)

	updated := pendingReview()
	updated.Rating = 4

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)

	res, err := f.svc.Update(context.Background(), dto.UpdateReviewRequest{Rating: 4}, updated.ID)

	assert.NoError(t, err)
	assert.Equal(t, 4, res.Rating)
}

func TestReviewService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := f.svc.Delete(context.Background(), "missing-id")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

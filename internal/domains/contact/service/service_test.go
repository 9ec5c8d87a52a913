package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	mailerMocks "homestay/infras/mailer/mocks"
	"homestay/infras/otel/mocks"
	contactMocks "homestay/internal/domains/contact/mocks"
	"homestay/internal/domains/contact/model"
	"homestay/internal/domains/contact/model/dto"
	"homestay/internal/domains/contact/service"
	cacheMocks "homestay/shared/cache/mocks"
	"homestay/shared/failure"
)

type fixture struct {
	repo   *contactMocks.MockContact
	mailer *mailerMocks.MockMailer
	svc    service.Contact
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := contactMocks.NewMockContact(ctrl)
	mail := mailerMocks.NewMockMailer(ctrl)
	cch := cacheMocks.NewMockRedisCache(ctrl)

	cch.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	cch.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		repo:   repo,
		mailer: mail,
		svc:    service.New(repo, &config.Config{}, cch, mocks.NewOtel(), mail),
	}
}

func createRequest() dto.CreateContactRequest {
	return dto.CreateContactRequest{
		FullName: "Jane Guest",
		Email:    "jane@example.com",
		Subject:  "Question about availability",
		Message:  "Do you have rooms free next month?",
	}
}

func TestContactService_Create(t *testing.T) {
	t.Run("successful create sends confirmation and flags it", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().SendContactConfirmation(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[model.FieldEmailSent])

				return nil
			})

		res, err := f.svc.Create(context.Background(), createRequest())

		assert.NoError(t, err)
		assert.Equal(t, model.StatusNew, res.Status)
		assert.True(t, res.EmailSent)
	})

	t.Run("email failure does not fail the request", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().SendContactConfirmation(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		res, err := f.svc.Create(context.Background(), createRequest())

		assert.NoError(t, err)
		assert.False(t, res.EmailSent)
	})
}

// Mark-as-read flips the status and the read flag in one write.
func TestContactService_MarkAsRead(t *testing.T) {
	f := newFixture(t)

	read := model.Contact{
		ID:       "contact-id-123",
		FullName: "Jane Guest",
		Email:    "jane@example.com",
		Status:   model.StatusRead,
		IsRead:   true,
	}

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, model.StatusRead, fields[model.FieldStatus])
			assert.Equal(t, true, fields[model.FieldIsRead])

			return nil
		})
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(read, nil)

	res, err := f.svc.MarkAsRead(context.Background(), read.ID)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusRead, res.Status)
	assert.True(t, res.IsRead)
}

func TestContactService_MarkAsReadNotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := f.svc.MarkAsRead(context.Background(), "missing-id")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestContactService_Statistics(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(10, nil)

	for range model.Statuses {
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)

	res, err := f.svc.Statistics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 3, res.Unread)
	assert.Len(t, res.ByStatus, len(model.Statuses))
}

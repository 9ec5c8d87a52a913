package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"homestay/shared/failure"
	"homestay/shared/validator"
)

type sampleRequest struct {
	Name   string `json:"name"   validate:"required,min=2,max=50"`
	Email  string `json:"email"  validate:"required,email"`
	Rating int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidate(t *testing.T) {
	t.Run("accepts a valid body", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Jane","email":"jane@example.com","rating":4}`)

		req := sampleRequest{}
		err := validator.Validate(body, &req)

		assert.NoError(t, err)
		assert.Equal(t, "Jane", req.Name)
		assert.Equal(t, 4, req.Rating)
	})

	t.Run("rejects malformed JSON with a bad request", func(t *testing.T) {
		body := strings.NewReader(`{"name":`)

		req := sampleRequest{}
		err := validator.Validate(body, &req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("reports every violation", func(t *testing.T) {
		body := strings.NewReader(`{"name":"J","email":"not-an-email","rating":9}`)

		req := sampleRequest{}
		err := validator.Validate(body, &req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Len(t, failure.GetFields(err), 3)
	})
}

func TestValidateStruct(t *testing.T) {
	t.Run("renders templated messages", func(t *testing.T) {
		req := sampleRequest{Name: "Jane"}

		err := validator.ValidateStruct(&req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("passes a valid struct", func(t *testing.T) {
		req := sampleRequest{Name: "Jane", Email: "jane@example.com"}

		assert.NoError(t, validator.ValidateStruct(&req))
	})
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("0c7cfde5-2f3b-4b6b-9a34-3e2f3a2a6f01", "uuid4"))

	err := validator.ValidateVar("not-a-uuid", "uuid4")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

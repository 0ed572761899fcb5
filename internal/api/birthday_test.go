package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/types"
)

func TestUpcomingBirthdays(t *testing.T) {
	env := setupTestEnv(t)
	env.birthdays.On("Upcoming", mock.Anything, service.UnitWeek).Return([]types.Birthday{{
		EID:        2,
		FullName:   "Bob",
		Department: "Engineering",
		BirthDate:  types.NewDate(1991, time.June, 27),
	}}, nil)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/birthday/upcoming?time_unit=week", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp types.BirthdayListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Birthdays, 1)
	assert.Equal(t, "1991-06-27", resp.Birthdays[0].BirthDate.String())
}

func TestUpcomingBirthdaysDefaultsToMonth(t *testing.T) {
	env := setupTestEnv(t)
	env.birthdays.On("Upcoming", mock.Anything, service.UnitMonth).Return(nil, nil)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/birthday/upcoming", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"birthdays":[]}`, rr.Body.String())
}

func TestUpcomingBirthdaysUnknownUnit(t *testing.T) {
	env := setupTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/birthday/upcoming?time_unit=year&lang=en", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid_input","message":"wrong parameters: time_unit"}`, rr.Body.String())
}

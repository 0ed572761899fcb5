package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/wb-service/portal/backend/internal/service"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{service.NotFound("profile"), http.StatusNotFound, "not_found"},
		{service.WrongParameters("time_unit"), http.StatusBadRequest, "invalid_input"},
		{service.IncorrectFileType([]string{"video/mp4"}), http.StatusBadRequest, "invalid_input"},
		{service.NotAllowed("log"), http.StatusForbidden, "not_allowed"},
		{service.TooLarge(), http.StatusRequestEntityTooLarge, "too_large"},
		{service.Unauthorized("expired token"), http.StatusUnauthorized, "unauthorized"},
		{fmt.Errorf("load profile: %w", service.NotFound("employee")), http.StatusNotFound, "not_found"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		status, kind := errorKind(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.kind, kind, tt.err.Error())
	}
}

func TestLocalizedMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		en   string
		ru   string
	}{
		{
			name: "not found",
			err:  service.NotFound("profile"),
			en:   `object "profile" not found`,
			ru:   `объект "profile" не найден`,
		},
		{
			name: "wrong parameters",
			err:  service.WrongParameters("time_unit"),
			en:   "wrong parameters: time_unit",
			ru:   "неверные параметры: time_unit",
		},
		{
			name: "file type",
			err:  service.IncorrectFileType([]string{"audio/mp3", "audio/mpeg"}),
			en:   "incorrect file type, allowed types: audio/mp3, audio/mpeg",
			ru:   "неверный тип файла, allowed types: 'audio/mp3', 'audio/mpeg'",
		},
		{
			name: "not allowed object",
			err:  service.NotAllowed("log"),
			en:   `object "log" not allowed`,
			ru:   `объект "log" не разрешен`,
		},
		{
			name: "not allowed",
			err:  service.NotAllowed(""),
			en:   "not allowed",
			ru:   "не разрешено",
		},
		{
			name: "too large",
			err:  service.TooLarge(),
			en:   "uploaded file is too big",
			ru:   "загруженный файл слишком большой",
		},
		{
			name: "internal keeps message",
			err:  errors.New("disk full"),
			en:   "disk full",
			ru:   "disk full",
		},
		{
			name: "internal without message",
			err:  errors.New(""),
			en:   "internal server error",
			ru:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.en, localizedMessage(tt.err, LangEN))
			assert.Equal(t, tt.ru, localizedMessage(tt.err, LangRU))
		})
	}
}

func TestRequestLang(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		fallback string
		want     string
	}{
		{"", LangRU, LangRU},
		{"", LangEN, LangEN},
		{"en", LangRU, LangEN},
		{"en-US", LangRU, LangEN},
		{"ru", LangEN, LangRU},
		{"RU", LangEN, LangRU},
		{"de", LangRU, LangRU},
		{"%%%", LangEN, LangEN},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?lang="+url.QueryEscape(tt.query), nil)
		assert.Equal(t, tt.want, requestLang(c, tt.fallback), "lang=%q fallback=%q", tt.query, tt.fallback)
	}
}

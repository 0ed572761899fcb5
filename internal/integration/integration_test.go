package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wb-service/portal/backend/internal/api"
	"github.com/wb-service/portal/backend/internal/database"
	"github.com/wb-service/portal/backend/internal/models"
	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/storage"
	"github.com/wb-service/portal/backend/internal/testhelpers"
	"github.com/wb-service/portal/backend/internal/types"
)

const (
	aliceToken = "alice-token"
	carolToken = "carol-token"
)

type portal struct {
	t      *testing.T
	router *gin.Engine
}

func newPortal(t *testing.T, db *gorm.DB) *portal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testhelpers.SeedOrg(t, db)
	for eid, token := range map[int64]string{1: aliceToken, 3: carolToken} {
		require.NoError(t, db.Create(&models.AuthToken{EmployeeEID: eid, Token: token}).Error)
	}

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	today := func() time.Time { return time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC) }
	access := service.NewAccessService(db)

	router := api.NewRouter(api.Deps{
		Profiles:  service.NewProfileService(db, access, service.NewChangeLogRecorder(time.Now), "https://portal.example", zerolog.Nop()),
		Birthdays: service.NewBirthdayService(db, today, time.UTC),
		Static:    service.NewStaticService(db, store, storage.Inline{Log: zerolog.Nop()}, service.DefaultMaxUploadBytes, zerolog.Nop()),
		Auth:      service.NewAuthService(db, "", time.Now),
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
		Logger:      zerolog.Nop(),
		DefaultLang: api.LangEN,
	})
	return &portal{t: t, router: router}
}

func (p *portal) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	p.router.ServeHTTP(rr, req)
	return rr
}

func (p *portal) profile(target, token string) types.ProfileResponse {
	rr := p.do(http.MethodGet, target, token, nil, "")
	require.Equal(p.t, http.StatusOK, rr.Code, rr.Body.String())
	var resp types.ProfileResponse
	require.NoError(p.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func runPortalScenario(t *testing.T, db *gorm.DB) {
	p := newPortal(t, db)

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		p.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("own profile shows personal phone", func(t *testing.T) {
		me := p.profile("/api/v1/profile/me", aliceToken)
		assert.Equal(t, int64(1), me.EID)
		require.NotNil(t, me.PersonalPhone)
		assert.Equal(t, "+79990000001", *me.PersonalPhone)
		require.NotNil(t, me.Department)
		assert.Equal(t, "Engineering", *me.Department)
	})

	t.Run("partial update is logged", func(t *testing.T) {
		body := `{"telegram":null,"about_me":"Platform lead","projects":[{"name":"Portal","start_d":"2024-01-01","end_d":"2024-12-31"}]}`
		rr := p.do(http.MethodPatch, "/api/v1/profile/me", aliceToken, strings.NewReader(body), "application/json")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var updated types.ProfileResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
		assert.Nil(t, updated.Telegram)
		require.NotNil(t, updated.AboutMe)
		assert.Equal(t, "Platform lead", *updated.AboutMe)
		require.NotNil(t, updated.PersonalPhone, "absent field is kept")
		require.Len(t, updated.Projects, 1)
		assert.Equal(t, "Portal", updated.Projects[0].Name)

		rr = p.do(http.MethodGet, "/api/v1/profile/log", aliceToken, nil, "")
		require.Equal(t, http.StatusOK, rr.Code)
		var entries []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		require.Len(t, entries, 3)

		assert.Equal(t, "telegram", entries[0]["field_name"])
		assert.Equal(t, "@alice", entries[0]["old_value"])
		assert.Nil(t, entries[0]["new_value"])
		assert.Equal(t, "about_me", entries[1]["field_name"])
		assert.Equal(t, "CREATE", entries[2]["operation"])
		assert.Equal(t, models.ChangeTableProject, entries[2]["table_name"])

		snapshot, ok := entries[2]["new_value"].(map[string]any)
		require.True(t, ok, "project snapshot is structured")
		assert.Equal(t, "Portal", snapshot["name"])
		assert.Equal(t, "2024-01-01", snapshot["start_d"])
	})

	t.Run("invalid update is rejected", func(t *testing.T) {
		body := `{"about_me":"` + strings.Repeat("я", models.MaxAboutMeLength+1) + `"}`
		rr := p.do(http.MethodPatch, "/api/v1/profile/me", aliceToken, strings.NewReader(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"invalid_input","message":"wrong parameters: about_me"}`, rr.Body.String())

		body = `{"telegram":"` + strings.Repeat("t", 300) + `"}`
		rr = p.do(http.MethodPatch, "/api/v1/profile/me", aliceToken, strings.NewReader(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"invalid_input","message":"wrong parameters: telegram"}`, rr.Body.String())
	})

	t.Run("personal phone visibility", func(t *testing.T) {
		alice := p.profile("/api/v1/profiles/1", carolToken)
		assert.Nil(t, alice.PersonalPhone, "carol is neither alice's manager, hrbp nor colleague")

		carol := p.profile("/api/v1/profiles/3", aliceToken)
		require.NotNil(t, carol.PersonalPhone, "alice manages carol")
		assert.Equal(t, "+79990000003", *carol.PersonalPhone)

		rr := p.do(http.MethodGet, "/api/v1/profile/log?eid=1", carolToken, nil, "")
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = p.do(http.MethodGet, "/api/v1/profile/log?eid=9999", carolToken, nil, "")
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = p.do(http.MethodGet, "/api/v1/profile/phone-access", aliceToken, nil, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"eids":[1,2,3]}`, rr.Body.String())
	})

	t.Run("static file lifecycle", func(t *testing.T) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		require.NoError(t, w.WriteField("type", "image"))
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
		header.Set("Content-Type", "image/png")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, _ = part.Write([]byte("\x89PNG\r\n"))
		require.NoError(t, w.Close())

		rr := p.do(http.MethodPost, "/api/v1/static/add", aliceToken, &body, w.FormDataContentType())
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var uploaded types.UploadResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &uploaded))
		require.NotZero(t, uploaded.ID)
		target := "?id=" + jsonNumber(uploaded.ID)

		rr = p.do(http.MethodGet, "/api/v1/static/get"+target, carolToken, nil, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=avatar.png`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, "\x89PNG\r\n", rr.Body.String())

		rr = p.do(http.MethodDelete, "/api/v1/static/delete"+target, carolToken, nil, "")
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = p.do(http.MethodDelete, "/api/v1/static/delete"+target, aliceToken, nil, "")
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = p.do(http.MethodGet, "/api/v1/static/get"+target, aliceToken, nil, "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("upcoming birthdays", func(t *testing.T) {
		rr := p.do(http.MethodGet, "/api/v1/birthday/upcoming?time_unit=week", aliceToken, nil, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp types.BirthdayListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Birthdays, 1)
		assert.Equal(t, int64(1), resp.Birthdays[0].EID)
		assert.Equal(t, "Engineering", resp.Birthdays[0].Department)
	})

	t.Run("unknown token", func(t *testing.T) {
		rr := p.do(http.MethodGet, "/api/v1/profile/me", "stolen", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func jsonNumber(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestPortalSQLite(t *testing.T) {
	runPortalScenario(t, testhelpers.SetupSQLite(t))
}

func TestPortalPostgres(t *testing.T) {
	runPortalScenario(t, testhelpers.SetupPostgres(t))
}

package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateProfileRequestValidate(t *testing.T) {
	runes := func(n int) string { return strings.Repeat("я", n) }
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		req  UpdateProfileRequest
		want string
	}{
		{"empty request", UpdateProfileRequest{}, ""},
		{"nulls", UpdateProfileRequest{Telegram: Null[string](), Projects: Null[[]ProjectInput]()}, ""},
		{"empty strings", UpdateProfileRequest{PersonalPhone: Some(""), AboutMe: Some("")}, ""},
		{"phone at limit", UpdateProfileRequest{PersonalPhone: Some(runes(64))}, ""},
		{"phone too long", UpdateProfileRequest{PersonalPhone: Some(runes(65))}, "personal_phone"},
		{"telegram too long", UpdateProfileRequest{Telegram: Some(runes(256))}, "telegram"},
		{"about me at limit", UpdateProfileRequest{AboutMe: Some(runes(1000))}, ""},
		{"about me too long", UpdateProfileRequest{AboutMe: Some(runes(1001))}, "about_me"},
		{"empty project list", UpdateProfileRequest{Projects: Some([]ProjectInput{})}, ""},
		{"project without name", UpdateProfileRequest{Projects: Some([]ProjectInput{{Name: ""}})}, "projects.name"},
		{"project with blank name", UpdateProfileRequest{Projects: Some([]ProjectInput{{Name: " "}})}, "projects.name"},
		{
			"second project name too long",
			UpdateProfileRequest{Projects: Some([]ProjectInput{{Name: "ok"}, {Name: runes(256)}})},
			"projects.name",
		},
		{
			"project position too long",
			UpdateProfileRequest{Projects: Some([]ProjectInput{{Name: "p", Position: str(runes(256))}})},
			"projects.position",
		},
		{
			"project link too long",
			UpdateProfileRequest{Projects: Some([]ProjectInput{{Name: "p", Link: str("https://" + runes(505))}})},
			"projects.link",
		},
		{
			"project ends before start",
			UpdateProfileRequest{Projects: Some([]ProjectInput{{
				Name:   "p",
				StartD: &Date{NewDate(2024, 5, 1).Time},
				EndD:   &Date{NewDate(2024, 4, 1).Time},
			}})},
			"projects.end_d",
		},
		{
			"project on a single day",
			UpdateProfileRequest{Projects: Some([]ProjectInput{{
				Name:   "p",
				StartD: &Date{NewDate(2024, 5, 1).Time},
				EndD:   &Date{NewDate(2024, 5, 1).Time},
			}})},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.want, InvalidField(err))
		})
	}
}

func TestInvalidFieldOfForeignError(t *testing.T) {
	assert.Equal(t, "body", InvalidField(errors.New("boom")))
	assert.Equal(t, "body", InvalidField(nil))
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/types"
)

// Supported message languages
const (
	LangRU = "ru"
	LangEN = "en"
)

var langMatcher = language.NewMatcher([]language.Tag{language.Russian, language.English})

// requestLang picks the message language from the lang query parameter.
// Regional variants such as en-US are accepted.
func requestLang(c *gin.Context, fallback string) string {
	if raw := c.Query("lang"); raw != "" {
		if tag, err := language.Parse(raw); err == nil {
			_, idx, conf := langMatcher.Match(tag)
			if conf != language.No {
				if idx == 1 {
					return LangEN
				}
				return LangRU
			}
		}
	}
	if fallback == LangEN {
		return LangEN
	}
	return LangRU
}

// errorKind maps a domain error to its HTTP status and wire name
func errorKind(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, service.ErrNotAllowed):
		return http.StatusForbidden, "not_allowed"
	case errors.Is(err, service.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	}
	return http.StatusInternalServerError, "internal"
}

// localizedMessage renders err for the client in lang
func localizedMessage(err error, lang string) string {
	var domainErr *service.Error
	if !errors.As(err, &domainErr) {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return "internal server error"
	}

	ru := lang == LangRU
	switch {
	case errors.Is(domainErr, service.ErrNotFound):
		if ru {
			return fmt.Sprintf("объект %q не найден", domainErr.Object)
		}
		return fmt.Sprintf("object %q not found", domainErr.Object)

	case errors.Is(domainErr, service.ErrInvalidInput):
		if len(domainErr.AllowedTypes) > 0 {
			if ru {
				quoted := make([]string, len(domainErr.AllowedTypes))
				for i, t := range domainErr.AllowedTypes {
					quoted[i] = "'" + t + "'"
				}
				return "неверный тип файла, allowed types: " + strings.Join(quoted, ", ")
			}
			return "incorrect file type, allowed types: " + strings.Join(domainErr.AllowedTypes, ", ")
		}
		if ru {
			return "неверные параметры: " + domainErr.Params
		}
		return "wrong parameters: " + domainErr.Params

	case errors.Is(domainErr, service.ErrNotAllowed):
		switch {
		case domainErr.Object == "" && ru:
			return "не разрешено"
		case domainErr.Object == "":
			return "not allowed"
		case ru:
			return fmt.Sprintf("объект %q не разрешен", domainErr.Object)
		}
		return fmt.Sprintf("object %q not allowed", domainErr.Object)

	case errors.Is(domainErr, service.ErrTooLarge):
		if ru {
			return "загруженный файл слишком большой"
		}
		return "uploaded file is too big"

	case errors.Is(domainErr, service.ErrUnauthorized):
		return domainErr.Params
	}
	return domainErr.Error()
}

// respondError writes err as a JSON error body and aborts the chain
func (r responder) respondError(c *gin.Context, err error) {
	status, kind := errorKind(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Error:   kind,
		Message: localizedMessage(err, requestLang(c, r.defaultLang)),
	})
}

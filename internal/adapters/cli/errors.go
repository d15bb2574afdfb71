package cli

import (
	"errors"

	"i18ntpl/internal/domain"
	"i18ntpl/internal/ports/input"
	"i18ntpl/pkg/templater"
)

// ErrorMessage resolves err to a user-facing message in the active language.
// Domain errors use the errors.<code> catalog entry; template errors are
// already user-facing and are returned as is.
func ErrorMessage(translator input.TranslationUseCase, err error) string {
	if err == nil {
		return ""
	}
	if isTemplateError(err) {
		return err.Error()
	}

	key := "errors.default"
	if code := domain.Code(err); code != "" {
		key = "errors." + code
	}
	msg, renderErr := translator.Render(key, map[string]string{"detail": err.Error()}, templater.Options{})
	if renderErr != nil {
		return err.Error()
	}
	return msg
}

func isTemplateError(err error) bool {
	return errors.Is(err, templater.ErrMissingCurvyBracket) ||
		errors.Is(err, templater.ErrUnknownField) ||
		errors.Is(err, templater.ErrSerialize) ||
		errors.Is(err, templater.ErrDepthExceeded)
}

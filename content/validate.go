package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"article-hand/models"
)

// ArticlePayload ist der verschachtelte Artikel, wie ihn der Editor sendet.
// Blocks haben die flache Legacy-Form und werden direkt als rohe Datensätze gelesen.
type ArticlePayload struct {
	Title           string           `json:"title" validate:"required"`
	Slug            string           `json:"slug,omitempty"`
	UserID          string           `json:"userId" validate:"required"`
	CategoryID      *string          `json:"categoryId,omitempty"`
	PublishDate     *time.Time       `json:"publishDate,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	MetaDescription string           `json:"metaDescription,omitempty"`
	FocusKeyword    string           `json:"focusKeyword,omitempty"`
	SEOTitle        string           `json:"seoTitle,omitempty"`
	SEOScore        int              `json:"seoScore,omitempty" validate:"gte=0,lte=100"`
	Version         int              `json:"version,omitempty" validate:"gte=0"`
	Sections        []SectionPayload `json:"sections" validate:"required,min=1"`
}

type SectionPayload struct {
	ID     string         `json:"id,omitempty"`
	Title  string         `json:"title"`
	Order  *int           `json:"order,omitempty"`
	Blocks []models.Block `json:"blocks"`
}

// FieldError beschreibt eine einzelne verletzte Regel.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError sammelt alle verletzten Regeln eines Payloads.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages liefert nur die Fehlermeldungen.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate prüft den Payload und meldet alle Verstöße gemeinsam (nicht fail-fast).
// Leere Sections sind erlaubt; nur der Artikel braucht mindestens eine Section.
func Validate(p ArticlePayload) error {
	p.Title = strings.TrimSpace(p.Title)
	p.UserID = strings.TrimSpace(p.UserID)

	var errs []FieldError
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate article payload: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}

	for i, s := range p.Sections {
		for j, b := range s.Blocks {
			if strings.TrimSpace(b.Type) == "" {
				field := fmt.Sprintf("sections[%d].blocks[%d].type", i, j)
				errs = append(errs, FieldError{Field: field, Message: field + " is required"})
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

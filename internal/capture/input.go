package capture

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength = 200
	MaxNotesLength = 4000
)

// Input is one capture as entered by the user.
type Input struct {
	Title      string
	Notes      string
	CategoryID string
	// DueDate is nil for captures without a due date.
	DueDate *time.Time
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func (in *Input) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.By(notBlank), validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&in.Notes, validation.RuneLength(0, MaxNotesLength)),
	)
}

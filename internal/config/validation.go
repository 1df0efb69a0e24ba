package config

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks config values for correctness.
// Returns an error naming every invalid field.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Picker),
		validation.Field(&c.Tokenizer),
		validation.Field(&c.Log),
		validation.Field(&c.UI),
	)
	if err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (p PickerConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.RefreshDelayMs, validation.Required, validation.Min(1)),
		validation.Field(&p.MaxConcurrentReads, validation.Required, validation.Min(1), validation.Max(256)),
		validation.Field(&p.ExcludeDirectories, validation.Each(validation.By(notBlank))),
		validation.Field(&p.ExcludeFileTypes, validation.Each(validation.By(dotPrefixed))),
	)
}

// Validate implements validation.Validatable.
func (t TokenizerConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Backend, validation.Required, validation.In("tiktoken", "gemini", "approx")),
		validation.Field(&t.Model, validation.When(t.Backend == "tiktoken", validation.Required)),
		validation.Field(&t.GeminiModel, validation.When(t.Backend == "gemini", validation.Required)),
	)
}

// Validate implements validation.Validatable.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.Required, validation.In("json", "console")),
	)
}

// Validate implements validation.Validatable.
func (u UIConfig) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.PreviewWidth, validation.Required, validation.Min(20)),
	)
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}

func dotPrefixed(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, ".") || len(s) < 2 {
		return errors.New("must start with '.'")
	}
	return nil
}

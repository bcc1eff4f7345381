package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vaultpass/batpass-go/internal/generator"
	"github.com/vaultpass/batpass-go/internal/model"
)

var ErrInvalidRequest = errors.New("invalid request")

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidRequest, strings.Join(e.Details, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// EventRecorder stores generation metadata.
type EventRecorder interface {
	Create(ctx context.Context, event *model.GenerationEvent) error
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen      *generator.Generator
	recorder EventRecorder
	validate *validator.Validate
}

// NewGeneratorService creates a new GeneratorService. recorder may be nil,
// in which case generations are not recorded.
func NewGeneratorService(gen *generator.Generator, recorder EventRecorder) *GeneratorService {
	if gen == nil {
		gen = generator.New(nil)
	}
	return &GeneratorService{
		gen:      gen,
		recorder: recorder,
		validate: validator.New(),
	}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	if req.Length == 0 {
		req.Length = generator.DefaultLength
	}
	if err := s.check(req); err != nil {
		return model.GenerateResponse{}, err
	}

	classes := classesFrom(req.Uppercase, req.Lowercase, req.Numbers, req.Symbols)
	password := s.gen.Generate(req.Length, classes)
	strength := generator.Estimate(req.Length, classes)

	if s.recorder != nil {
		event := &model.GenerationEvent{
			Length:   req.Length,
			Upper:    classes.Upper,
			Lower:    classes.Lower,
			Digits:   classes.Digits,
			Symbols:  classes.Symbols,
			Strength: strength,
		}
		if err := s.recorder.Create(ctx, event); err != nil {
			slog.Warn("recording generation event failed", "error", err)
		}
	}

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Strength: strength,
		Label:    generator.Label(strength),
	}, nil
}

// Estimate scores a configuration without generating a password.
func (s *GeneratorService) Estimate(_ context.Context, req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Length == 0 {
		req.Length = generator.DefaultLength
	}
	if err := s.check(req); err != nil {
		return model.StrengthResponse{}, err
	}

	strength := generator.Estimate(req.Length, classesFrom(req.Uppercase, req.Lowercase, req.Numbers, req.Symbols))
	return model.StrengthResponse{
		Strength: strength,
		Max:      generator.MaxScore,
		Label:    generator.Label(strength),
	}, nil
}

func (s *GeneratorService) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	return &ValidationError{Details: details}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// classesFrom applies the screen defaults to unset flags.
func classesFrom(upper, lower, numbers, symbols *bool) generator.Classes {
	def := generator.DefaultClasses()
	return generator.Classes{
		Upper:   boolOrDefault(upper, def.Upper),
		Lower:   boolOrDefault(lower, def.Lower),
		Digits:  boolOrDefault(numbers, def.Digits),
		Symbols: boolOrDefault(symbols, def.Symbols),
	}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

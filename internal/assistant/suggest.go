// Package assistant asks a language model for brushes and canvas settings
// that suit a described drawing style.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jwulff/artstudio-go/internal/codec"
)

// ErrInvalidRequest is returned for requests that are never sent.
var ErrInvalidRequest = errors.New("invalid suggestion request")

// Request is the input of a suggestion.
type Request struct {
	// DrawingStyleDescription describes techniques, subjects and color
	// preferences. Required.
	DrawingStyleDescription string `json:"drawingStyleDescription"`
	// ExampleArtworkDataURI is an optional data:<mime>;base64,<data> image.
	ExampleArtworkDataURI string `json:"exampleArtworkDataUri,omitempty"`
}

// Validate checks the request before it is sent.
func (r Request) Validate() error {
	if strings.TrimSpace(r.DrawingStyleDescription) == "" {
		return fmt.Errorf("%w: drawing style description is required", ErrInvalidRequest)
	}
	if r.ExampleArtworkDataURI != "" {
		mime, _, err := codec.ParseDataURI(r.ExampleArtworkDataURI)
		if err != nil {
			return fmt.Errorf("%w: example artwork: %v", ErrInvalidRequest, err)
		}
		if !strings.HasPrefix(mime, "image/") {
			return fmt.Errorf("%w: example artwork must be an image, got %s", ErrInvalidRequest, mime)
		}
	}
	return nil
}

// CanvasSuggestion holds suggested canvas settings as free text.
type CanvasSuggestion struct {
	Resolution   string `json:"resolution"`
	ColorProfile string `json:"colorProfile"`
	Size         string `json:"size"`
}

// Suggestion is the result of a suggestion.
type Suggestion struct {
	SuggestedBrushes        []string         `json:"suggestedBrushes"`
	SuggestedCanvasSettings CanvasSuggestion `json:"suggestedCanvasSettings"`
	StyleAnalysis           string           `json:"styleAnalysis"`
}

func (s *Suggestion) validate() error {
	if s.SuggestedBrushes == nil {
		return errors.New("missing suggestedBrushes")
	}
	if strings.TrimSpace(s.StyleAnalysis) == "" {
		return errors.New("missing styleAnalysis")
	}
	return nil
}

// Suggester produces suggestions. The HTTP client implements it; tests
// and transports depend on the interface.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (*Suggestion, error)
}

// ServiceError reports a failed or malformed call to the suggestion
// service. Message is meant for people.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return "failed to get AI suggestions: " + e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsServiceError checks if an error is a suggestion service failure.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

func serviceError(err error, format string, args ...any) *ServiceError {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg += ": " + err.Error()
	}
	return &ServiceError{Message: msg, Err: err}
}

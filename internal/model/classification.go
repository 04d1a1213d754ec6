package model

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/capture/internal/common"
	"github.com/go-playground/validator/v10"
)

// ConfidenceThreshold is the minimum confidence a classification needs to keep
// its suggested action. Anything strictly below it is routed to the inbox.
const ConfidenceThreshold = 0.6

// Titles used for synthetic classifications.
const (
	FallbackTitle         = "Unclassified capture"
	ErrorPlaceholderTitle = "Processing error"
)

var validate = validator.New()

// Classification is the validated routing decision for one capture.
// Values are only produced by ParseClassification, NewClassification or the
// synthetic constructors, and are never mutated afterwards.
type Classification struct {
	URL     *string `json:"url"`
	Project *string `json:"project"`
	Action  Action  `json:"action"`
	// Suggested is the action the classifier proposed before the
	// confidence gate. It is never rewritten by WithAction.
	Suggested  Action   `json:"suggested_action"`
	Title      string   `json:"title"`
	Comment    string   `json:"comment"`
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

// ClassificationInput is the wire shape returned by the completion provider.
type ClassificationInput struct {
	Action     *string  `json:"action" validate:"required,oneof=save_link new_idea append_to_project inbox"`
	URL        *string  `json:"url"`
	Project    *string  `json:"project"`
	Title      *string  `json:"title" validate:"required,min=1"`
	Comment    *string  `json:"comment" validate:"required,min=1"`
	Tags       []string `json:"tags" validate:"required"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
}

// ParseClassification decodes and validates a JSON classification.
func ParseClassification(data []byte) (Classification, error) {
	var in ClassificationInput
	if err := json.Unmarshal(data, &in); err != nil {
		return Classification{}, fmt.Errorf("%w: %w", common.ErrInvalidClassification, err)
	}
	return NewClassification(in)
}

// NewClassification validates in and builds a Classification from it.
func NewClassification(in ClassificationInput) (Classification, error) {
	if err := validate.Struct(in); err != nil {
		return Classification{}, fmt.Errorf("%w: %w", common.ErrInvalidClassification, err)
	}
	if in.URL != nil {
		if err := validate.Var(*in.URL, "url"); err != nil {
			return Classification{}, fmt.Errorf("%w: url %q is not an absolute URL", common.ErrInvalidClassification, *in.URL)
		}
	}

	tags := make([]string, len(in.Tags))
	copy(tags, in.Tags)

	return Classification{
		Action:     Action(*in.Action),
		Suggested:  Action(*in.Action),
		URL:        cloneString(in.URL),
		Tags:       tags,
		Project:    cloneString(in.Project),
		Title:      *in.Title,
		Comment:    *in.Comment,
		Confidence: *in.Confidence,
	}, nil
}

// FallbackClassification is the result used when classification fails.
// The raw text is kept verbatim as the comment so nothing is lost.
func FallbackClassification(rawText string) Classification {
	return Classification{
		Action:     ActionInbox,
		Suggested:  ActionInbox,
		Tags:       []string{},
		Title:      FallbackTitle,
		Comment:    rawText,
		Confidence: 0,
	}
}

// ErrorPlaceholder is the inbox-shaped result recorded for a failed run.
func ErrorPlaceholder(rawText string) Classification {
	c := FallbackClassification(rawText)
	c.Title = ErrorPlaceholderTitle
	return c
}

// WithAction returns a copy of c with its action replaced.
func (c Classification) WithAction(action Action) Classification {
	out := c
	out.Action = action
	out.Tags = append([]string(nil), c.Tags...)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	out.URL = cloneString(c.URL)
	out.Project = cloneString(c.Project)
	return out
}

// Gate applies the confidence threshold, returning a copy routed to the inbox
// when confidence is strictly below ConfidenceThreshold.
func (c Classification) Gate() Classification {
	if c.Confidence < ConfidenceThreshold {
		return c.WithAction(ActionInbox)
	}
	return c
}

// SuggestedAction returns the pre-gate action, or Action when unset.
func (c Classification) SuggestedAction() Action {
	if c.Suggested == "" {
		return c.Action
	}
	return c.Suggested
}

// URLValue returns the URL or "" when absent.
func (c Classification) URLValue() string {
	if c.URL == nil {
		return ""
	}
	return *c.URL
}

// ProjectValue returns the project name or "" when absent.
func (c Classification) ProjectValue() string {
	if c.Project == nil {
		return ""
	}
	return *c.Project
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

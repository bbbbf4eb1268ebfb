// Package domain holds the annotate service contract and DTOs
package domain

import (
	"entitylens/internal/core/entity"
	"entitylens/internal/core/pipeline"
)

// DefaultMaxText is the rune cap on AnnotateInput.Text unless CORE_ANNOTATE_MAX_TEXT overrides it
const DefaultMaxText = 65536

// AnnotateInput is the request body for one annotation run
type AnnotateInput struct {
	// Text is the input to classify; empty text yields no lines
	// its length cap is enforced by the service so it follows config
	Text string `json:"text" example:"Call me at 5551234567 tomorrow"`
	// Locale picks the output language, auto detects it from the text
	Locale string `json:"locale,omitempty" validate:"omitempty,max=16,locale" example:"en_GB"`
	// Region is the home dialing region for phone formatting
	Region string `json:"region,omitempty" validate:"omitempty,region" example:"US"`
}

// AnnotateOutput is one finished run
type AnnotateOutput struct {
	RunID       string                `json:"run_id" example:"2b1f7f1e-3d4f-4d59-9b43-5d1c0f0f2a10"`
	Locale      string                `json:"locale" example:"en"`
	Lines       []string              `json:"lines"`
	Text        string                `json:"text" example:"Phone: 5551234567 (formatted: (555) 123-4567)"`
	Spans       entity.Result         `json:"spans" swaggertype:"array,object"`
	Entities    int                   `json:"entities" example:"2"`
	Diagnostics []pipeline.Diagnostic `json:"diagnostics"`
}

// KindsInput selects the template language for the kinds listing
type KindsInput struct {
	Locale string `json:"locale,omitempty" validate:"omitempty,max=16,locale"`
}

// KindInfo describes one entity kind and the template it renders with
type KindInfo struct {
	Kind     string `json:"kind" example:"phone"`
	Template string `json:"template" example:"Phone: {0} (formatted: {1})"`
	Payload  bool   `json:"payload" example:"false"`
}

// KindsOutput lists every kind in declaration order, unknown last
type KindsOutput struct {
	Locale string     `json:"locale" example:"en"`
	Kinds  []KindInfo `json:"kinds"`
}

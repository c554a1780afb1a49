package intelligence

import (
	"context"

	"slotsense/models"
)

// ContentGenerator is the language-model surface the normalizer depends on.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// NormalizerService turns a raw webhook payload into a structured booking.
// A payload the model cannot reduce to JSON is a hard failure.
type NormalizerService interface {
	Normalize(ctx context.Context, payload []byte) (models.NormalizedBooking, error)
}

package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tahadi-app/tahadi-api/internal/dto"
	"github.com/tahadi-app/tahadi-api/internal/models"
	"github.com/tahadi-app/tahadi-api/internal/repository"
	"github.com/tahadi-app/tahadi-api/internal/scoring"
)

// seedSchema constrains the operator-supplied template payload before any
// row touches the database. Day numbers outside 1..30 and missing texts
// are rejected wholesale.
const seedSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "maxItems": 30,
  "items": {
    "type": "object",
    "required": ["day_number", "hadith_text", "fiqh_statement_text", "impact_task_text", "correct_answer"],
    "additionalProperties": false,
    "properties": {
      "day_number": {"type": "integer", "minimum": 1, "maximum": 30},
      "hadith_text": {"type": "string", "minLength": 1},
      "fiqh_statement_text": {"type": "string", "minLength": 1},
      "impact_task_text": {"type": "string", "minLength": 1},
      "correct_answer": {"type": "boolean"}
    }
  }
}`

// SeedService loads the global 30-day template catalog that new groups
// copy from at creation time. Both operations require the seed token:
// templates carry the fiqh answer keys, so listing them is as sensitive
// as writing them.
type SeedService interface {
	SeedTemplates(ctx context.Context, token string, payload []byte) (int64, error)
	ListTemplates(ctx context.Context, token string) ([]dto.SeedTemplate, error)
}

type seedService struct {
	templates repository.TemplateRepository
	schema    *jsonschema.Schema
	token     string
	logger    zerolog.Logger
}

// NewSeedService constructs a SeedService instance. The token gates the
// seed endpoint; an empty token disables seeding entirely.
func NewSeedService(templates repository.TemplateRepository, token string, logger zerolog.Logger) (SeedService, error) {
	schema, err := jsonschema.CompileString("seed.schema.json", seedSchema)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	return &seedService{
		templates: templates,
		schema:    schema,
		token:     token,
		logger:    logger.With().Str("component", "seed_service").Logger(),
	}, nil
}

// authorize compares the caller token against the configured one. An
// empty configured token disables the seed surface entirely.
func (s *seedService) authorize(token string) error {
	if s.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return ErrSeedTokenInvalid
	}
	return nil
}

func (s *seedService) SeedTemplates(ctx context.Context, token string, payload []byte) (int64, error) {
	if err := s.authorize(token); err != nil {
		return 0, err
	}

	var decoded interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSeedPayload, err)
	}
	if err := s.schema.Validate(decoded); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSeedPayload, err)
	}

	var entries []dto.SeedTemplate
	if err := json.Unmarshal(payload, &entries); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSeedPayload, err)
	}

	seen := make(map[int]bool, len(entries))
	templates := make([]models.DayTemplate, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.DayNumber] {
			return 0, fmt.Errorf("%w: duplicate day_number %d", ErrSeedPayload, entry.DayNumber)
		}
		seen[entry.DayNumber] = true
		templates = append(templates, models.DayTemplate{
			DayNumber:         entry.DayNumber,
			HadithText:        entry.HadithText,
			FiqhStatementText: entry.FiqhStatementText,
			ImpactTaskText:    entry.ImpactTaskText,
			CorrectAnswer:     entry.CorrectAnswer,
		})
	}

	affected, err := s.templates.UpsertBatch(ctx, templates)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("templates", len(templates)).Msg("day templates seeded")

	return affected, nil
}

func (s *seedService) ListTemplates(ctx context.Context, token string) ([]dto.SeedTemplate, error) {
	if err := s.authorize(token); err != nil {
		return nil, err
	}

	rows, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SeedTemplate, 0, scoring.MaxDay)
	for _, row := range rows {
		out = append(out, dto.SeedTemplate{
			DayNumber:         row.DayNumber,
			HadithText:        row.HadithText,
			FiqhStatementText: row.FiqhStatementText,
			ImpactTaskText:    row.ImpactTaskText,
			CorrectAnswer:     row.CorrectAnswer,
		})
	}

	return out, nil
}

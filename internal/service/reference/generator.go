package reference

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var referenceRe = regexp.MustCompile(domain.ReferencePattern)

// Generator выдает номера бронирования вида BKXXXXXXXX
type Generator struct {
	repo        AppointmentRepository
	maxAttempts int
	newUUID     func() (uuid.UUID, error)
	logger      Logger
}

// NewGenerator создает генератор. maxAttempts <= 0 заменяется значением по умолчанию.
func NewGenerator(repo AppointmentRepository, maxAttempts int, logger Logger) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultReferenceAttempts
	}
	return &Generator{
		repo:        repo,
		maxAttempts: maxAttempts,
		newUUID:     uuid.NewRandom,
		logger:      logger,
	}
}

// Generate возвращает номер, не занятый на момент проверки.
// Окончательную уникальность гарантирует уникальный индекс при сохранении.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		id, err := g.newUUID()
		if err != nil {
			return "", fmt.Errorf("%w: entropy source: %v", ErrInternal, err)
		}

		candidate := Candidate(id)

		exists, err := g.repo.ExistsByReference(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: check reference %s: %w", ErrInternal, candidate, err)
		}
		if !exists {
			return candidate, nil
		}

		g.logger.Warn("ReferenceGenerator: collision on %s, attempt %d/%d", candidate, attempt, g.maxAttempts)
	}

	g.logger.Error("ReferenceGenerator: exhausted %d attempts", g.maxAttempts)
	return "", ErrReferenceExhausted
}

// Candidate строит номер из UUID: префикс и первые 8 hex-символов в верхнем регистре
func Candidate(id uuid.UUID) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return domain.ReferencePrefix + hex[:domain.ReferenceRandomLength]
}

// IsValid проверяет внешний формат номера бронирования
func IsValid(reference string) bool {
	return referenceRe.MatchString(reference)
}

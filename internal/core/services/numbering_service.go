package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/billing_ledger/internal/apperrors"
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/platform/metrics"
	"github.com/SscSPs/billing_ledger/internal/utils/numbering"
)

const (
	defaultNumberingAttempts = 3
	defaultNumberingBackoff  = 25 * time.Millisecond
)

// ErrNumberGenerationExhausted is returned when every numbering attempt collided with a taken number.
var ErrNumberGenerationExhausted = fmt.Errorf("%w: number generation exhausted", apperrors.ErrConflict)

// numberingService derives the next number from the latest stored document and
// relies on the unique constraint on documents.number to detect races.
type numberingService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	documents   portsrepo.DocumentReader
	locker      portssvc.Locker
	maxAttempts int
	backoff     time.Duration
}

var _ portssvc.NumberingSvc = (*numberingService)(nil)

// NewNumberingService creates the numbering service. A nil locker disables cross-process locking.
func NewNumberingService(uow portsrepo.UnitOfWork, documents portsrepo.DocumentReader, locker portssvc.Locker, maxAttempts int, backoff time.Duration, base BaseService) portssvc.NumberingSvc {
	if maxAttempts < 1 {
		maxAttempts = defaultNumberingAttempts
	}
	if backoff < 0 {
		backoff = defaultNumberingBackoff
	}
	return &numberingService{
		BaseService: base,
		uow:         uow,
		documents:   documents,
		locker:      locker,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

func (s *numberingService) NextNumber(ctx context.Context, kind domain.DocumentKind) (string, error) {
	if !kind.IsValid() {
		return "", apperrors.NewValidationError("kind", "must be one of [bill estimate]")
	}
	return s.candidate(ctx, s.documents, kind)
}

func (s *numberingService) candidate(ctx context.Context, documents portsrepo.DocumentReader, kind domain.DocumentKind) (string, error) {
	last := ""
	latest, err := documents.FindLatestDocument(ctx, kind)
	switch {
	case err == nil:
		last = latest.Number
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return "", fmt.Errorf("failed to read latest %s: %w", kind, err)
	}
	return numbering.Next(last, kind.Prefix(), s.now().Year()), nil
}

func (s *numberingService) Issue(ctx context.Context, kind domain.DocumentKind, persist portssvc.IssueFunc) (string, error) {
	if !kind.IsValid() {
		return "", apperrors.NewValidationError("kind", "must be one of [bill estimate]")
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, "numbering:"+string(kind))
		if err != nil {
			s.LogError(ctx, err, "Failed to acquire numbering lock", slog.String("kind", string(kind)))
			return "", fmt.Errorf("failed to acquire numbering lock: %w", err)
		}
		defer release(context.WithoutCancel(ctx))
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		var number string
		err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositorySet) error {
			var err error
			number, err = s.candidate(ctx, repos.Documents, kind)
			if err != nil {
				return err
			}
			return persist(ctx, repos, number)
		})
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, apperrors.ErrNumberTaken) {
			return "", err
		}

		metrics.NumberingRetry(string(kind))
		s.LogDebug(ctx, "Document number taken, retrying",
			slog.String("kind", string(kind)), slog.String("number", number), slog.Int("attempt", attempt))

		if attempt == s.maxAttempts {
			break
		}
		if err := sleepCtx(ctx, s.backoff*time.Duration(attempt)); err != nil {
			return "", err
		}
	}

	metrics.NumberingExhausted(string(kind))
	s.LogError(ctx, ErrNumberGenerationExhausted, "Giving up on document numbering",
		slog.String("kind", string(kind)), slog.Int("attempts", s.maxAttempts))
	return "", ErrNumberGenerationExhausted
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

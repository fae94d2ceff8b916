package services

import (
	"time"

	portsrepo "github.com/SscSPs/billing_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/SscSPs/billing_ledger/internal/platform/config"
)

type containerOptions struct {
	locker portssvc.Locker
	clock  func() time.Time
}

// ContainerOption customises NewServiceContainer.
type ContainerOption func(*containerOptions)

// WithLocker serialises document numbering across processes.
func WithLocker(l portssvc.Locker) ContainerOption {
	return func(o *containerOptions) { o.locker = l }
}

// WithClock replaces time.Now for every service.
func WithClock(clock func() time.Time) ContainerOption {
	return func(o *containerOptions) { o.clock = clock }
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...ContainerOption) *portssvc.ServiceContainer {
	var o containerOptions
	for _, opt := range opts {
		opt(&o)
	}

	base := BaseService{Timeout: cfg.OperationTimeout, Clock: o.clock}
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(cfg, base)
	container.Client = NewClientService(repos.Clients, base)
	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethods, repos.UnitOfWork, base)
	container.Ledger = NewLedgerService(repos.RepositorySet, repos.UnitOfWork, base)
	container.Receipt = NewReceiptService(repos.RepositorySet, repos.UnitOfWork, base)

	// Documents need numbering, which owns the unit of work for creation.
	container.Numbering = NewNumberingService(
		repos.UnitOfWork,
		repos.Documents,
		o.locker,
		cfg.NumberingMaxAttempts,
		cfg.NumberingBackoff,
		base,
	)
	container.Document = NewDocumentService(repos.RepositorySet, repos.UnitOfWork, container.Numbering, base)

	return container
}

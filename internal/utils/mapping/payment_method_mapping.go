package mapping

import (
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/models"
)

// ToModelPaymentMethod converts a domain PaymentMethod to a model PaymentMethod
func ToModelPaymentMethod(d domain.PaymentMethod) models.PaymentMethod {
	return models.PaymentMethod{
		PaymentMethodID: d.PaymentMethodID,
		MethodType:      string(d.Type),
		Name:            d.Name,
		AccountName:     d.AccountName,
		AccountNumber:   d.AccountNumber,
		Balance:         d.Balance,
		IsDefault:       d.IsDefault,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentMethod converts a model PaymentMethod to a domain PaymentMethod
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		Type:            domain.PaymentType(m.MethodType),
		Name:            m.Name,
		AccountName:     m.AccountName,
		AccountNumber:   m.AccountNumber,
		Balance:         m.Balance,
		IsDefault:       m.IsDefault,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

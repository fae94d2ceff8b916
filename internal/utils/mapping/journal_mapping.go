package mapping

import (
	"github.com/SscSPs/billing_ledger/internal/core/domain"
	"github.com/SscSPs/billing_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntrySeq:    d.Seq,
		EntryID:     d.EntryID,
		ClientID:    d.ClientID,
		EntryDate:   d.Date,
		Particular:  d.Particular,
		EntryType:   string(d.Type),
		Amount:      d.Amount,
		ReferenceID: NullString(d.ReferenceID),
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		ClientID:    m.ClientID,
		Date:        m.EntryDate,
		Particular:  m.Particular,
		Type:        domain.JournalEntryType(m.EntryType),
		Amount:      m.Amount,
		ReferenceID: m.ReferenceID.String,
		Notes:       m.Notes,
		Seq:         m.EntrySeq,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/tms/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for audit trail entries. Rows are
// append-only; nothing updates or deletes them.
type AuditEntryModel struct {
	BaseModel
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:1"`
	ActorUID   string    `gorm:"type:varchar(100);not null"`
	ActorRole  string    `gorm:"type:varchar(50)"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_audit_tenant_entity,priority:2"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:3"`
	Action     string    `gorm:"type:varchar(20);not null"`
	Before     []byte    `gorm:"type:jsonb"`
	After      []byte    `gorm:"type:jsonb"`
	Reason     string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain Entry
func (m *AuditEntryModel) ToDomain() (*audit.Entry, error) {
	entry := &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		ActorUID:   m.ActorUID,
		ActorRole:  m.ActorRole,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     audit.Action(m.Action),
		Reason:     m.Reason,
	}
	if len(m.Before) > 0 {
		if err := json.Unmarshal(m.Before, &entry.Before); err != nil {
			return nil, err
		}
	}
	if len(m.After) > 0 {
		if err := json.Unmarshal(m.After, &entry.After); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// FromDomain populates the persistence model from a domain Entry
func (m *AuditEntryModel) FromDomain(e *audit.Entry) error {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.ActorUID = e.ActorUID
	m.ActorRole = e.ActorRole
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Action = string(e.Action)
	m.Reason = e.Reason

	if e.Before != nil {
		data, err := json.Marshal(e.Before)
		if err != nil {
			return err
		}
		m.Before = data
	}
	if e.After != nil {
		data, err := json.Marshal(e.After)
		if err != nil {
			return err
		}
		m.After = data
	}
	return nil
}

// AuditEntryModelFromDomain creates a new persistence model from a domain Entry
func AuditEntryModelFromDomain(e *audit.Entry) (*AuditEntryModel, error) {
	m := &AuditEntryModel{}
	if err := m.FromDomain(e); err != nil {
		return nil, err
	}
	return m, nil
}

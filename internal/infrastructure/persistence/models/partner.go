package models

import (
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/partner"
)

// BrokerModel is the persistence model for brokers
type BrokerModel struct {
	TenantAggregateModel
	Name         string `gorm:"type:varchar(200);not null"`
	MCNumber     string `gorm:"type:varchar(50);index"`
	ContactName  string `gorm:"type:varchar(200)"`
	ContactPhone string `gorm:"type:varchar(50)"`
	ContactEmail string `gorm:"type:varchar(200)"`
	Status       string `gorm:"type:varchar(20);not null;index"`
	Remark       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BrokerModel) TableName() string {
	return "brokers"
}

// ToDomain converts the persistence model to a domain Broker
func (m *BrokerModel) ToDomain() *partner.Broker {
	broker := &partner.Broker{
		Name:         m.Name,
		MCNumber:     m.MCNumber,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		Status:       partner.BrokerStatus(m.Status),
		Remark:       m.Remark,
	}
	m.PopulateTenantAggregateRoot(&broker.TenantAggregateRoot)
	return broker
}

// FromDomain populates the persistence model from a domain Broker
func (m *BrokerModel) FromDomain(b *partner.Broker) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.Name = b.Name
	m.MCNumber = b.MCNumber
	m.ContactName = b.ContactName
	m.ContactPhone = b.ContactPhone
	m.ContactEmail = b.ContactEmail
	m.Status = string(b.Status)
	m.Remark = b.Remark
}

// BrokerModelFromDomain creates a new persistence model from a domain Broker
func BrokerModelFromDomain(b *partner.Broker) *BrokerModel {
	m := &BrokerModel{}
	m.FromDomain(b)
	return m
}

// FactoringCompanyModel is the persistence model for factoring companies
type FactoringCompanyModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	FeePercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	ContactName   string          `gorm:"type:varchar(200)"`
	ContactPhone  string          `gorm:"type:varchar(50)"`
	ContactEmail  string          `gorm:"type:varchar(200)"`
	IsDefault     bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (FactoringCompanyModel) TableName() string {
	return "factoring_companies"
}

// ToDomain converts the persistence model to a domain FactoringCompany
func (m *FactoringCompanyModel) ToDomain() *partner.FactoringCompany {
	company := &partner.FactoringCompany{
		Name:          m.Name,
		FeePercentage: m.FeePercentage,
		ContactName:   m.ContactName,
		ContactPhone:  m.ContactPhone,
		ContactEmail:  m.ContactEmail,
		IsDefault:     m.IsDefault,
	}
	m.PopulateTenantAggregateRoot(&company.TenantAggregateRoot)
	return company
}

// FromDomain populates the persistence model from a domain FactoringCompany
func (m *FactoringCompanyModel) FromDomain(f *partner.FactoringCompany) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.Name = f.Name
	m.FeePercentage = f.FeePercentage
	m.ContactName = f.ContactName
	m.ContactPhone = f.ContactPhone
	m.ContactEmail = f.ContactEmail
	m.IsDefault = f.IsDefault
}

// FactoringCompanyModelFromDomain creates a new persistence model from a domain FactoringCompany
func FactoringCompanyModelFromDomain(f *partner.FactoringCompany) *FactoringCompanyModel {
	m := &FactoringCompanyModel{}
	m.FromDomain(f)
	return m
}

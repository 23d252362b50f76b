package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/fleet"
)

// DriverModel is the persistence model for drivers
type DriverModel struct {
	TenantAggregateModel
	Name          string `gorm:"type:varchar(200);not null"`
	Phone         string `gorm:"type:varchar(50)"`
	Email         string `gorm:"type:varchar(200)"`
	LicenseNumber string `gorm:"type:varchar(50)"`
	Status        string `gorm:"type:varchar(20);not null;index"`

	PayType       string          `gorm:"type:varchar(20);not null"`
	PayPercentage decimal.Decimal `gorm:"type:numeric(6,4);not null;default:0"`
	PerMileRate   decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	FlatRate      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	CurrentTruckID *uuid.UUID `gorm:"type:uuid"`
	TrailerID      *uuid.UUID `gorm:"type:uuid"`
	HiredAt        *time.Time
}

// TableName returns the table name for GORM
func (DriverModel) TableName() string {
	return "drivers"
}

// ToDomain converts the persistence model to a domain Driver
func (m *DriverModel) ToDomain() *fleet.Driver {
	driver := &fleet.Driver{
		Name:          m.Name,
		Phone:         m.Phone,
		Email:         m.Email,
		LicenseNumber: m.LicenseNumber,
		Status:        fleet.DriverStatus(m.Status),
		Payment: fleet.PaymentConfig{
			Type:          fleet.PayType(m.PayType),
			PayPercentage: m.PayPercentage,
			PerMileRate:   m.PerMileRate,
			FlatRate:      m.FlatRate,
		},
		CurrentTruckID: m.CurrentTruckID,
		TrailerID:      m.TrailerID,
		HiredAt:        m.HiredAt,
	}
	m.PopulateTenantAggregateRoot(&driver.TenantAggregateRoot)
	return driver
}

// FromDomain populates the persistence model from a domain Driver
func (m *DriverModel) FromDomain(d *fleet.Driver) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.Name = d.Name
	m.Phone = d.Phone
	m.Email = d.Email
	m.LicenseNumber = d.LicenseNumber
	m.Status = string(d.Status)
	m.PayType = string(d.Payment.Type)
	m.PayPercentage = d.Payment.PayPercentage
	m.PerMileRate = d.Payment.PerMileRate
	m.FlatRate = d.Payment.FlatRate
	m.CurrentTruckID = d.CurrentTruckID
	m.TrailerID = d.TrailerID
	m.HiredAt = d.HiredAt
}

// DriverModelFromDomain creates a new persistence model from a domain Driver
func DriverModelFromDomain(d *fleet.Driver) *DriverModel {
	m := &DriverModel{}
	m.FromDomain(d)
	return m
}

// DispatcherModel is the persistence model for dispatchers
type DispatcherModel struct {
	TenantAggregateModel
	Name           string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(50)"`
	Email          string          `gorm:"type:varchar(200)"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	CommissionType string          `gorm:"type:varchar(20);not null"`
	CommissionRate decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (DispatcherModel) TableName() string {
	return "dispatchers"
}

// ToDomain converts the persistence model to a domain Dispatcher
func (m *DispatcherModel) ToDomain() *fleet.Dispatcher {
	dispatcher := &fleet.Dispatcher{
		Name:           m.Name,
		Phone:          m.Phone,
		Email:          m.Email,
		Status:         fleet.DriverStatus(m.Status),
		CommissionType: fleet.CommissionType(m.CommissionType),
		CommissionRate: m.CommissionRate,
	}
	m.PopulateTenantAggregateRoot(&dispatcher.TenantAggregateRoot)
	return dispatcher
}

// FromDomain populates the persistence model from a domain Dispatcher
func (m *DispatcherModel) FromDomain(d *fleet.Dispatcher) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.Name = d.Name
	m.Phone = d.Phone
	m.Email = d.Email
	m.Status = string(d.Status)
	m.CommissionType = string(d.CommissionType)
	m.CommissionRate = d.CommissionRate
}

// DispatcherModelFromDomain creates a new persistence model from a domain Dispatcher
func DispatcherModelFromDomain(d *fleet.Dispatcher) *DispatcherModel {
	m := &DispatcherModel{}
	m.FromDomain(d)
	return m
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tms/backend/internal/domain/dispatch"
	"github.com/tms/backend/internal/domain/fleet"
)

// LoadModel is the persistence model for loads. The domain aggregate's nested
// accessorial, driver slot and derived financial structures are flattened
// into columns; derived figures are stored so list views and reports never
// re-run the cascade.
type LoadModel struct {
	TenantAggregateModel
	LoadNumber string `gorm:"type:varchar(50);not null;uniqueIndex:idx_loads_tenant_number,priority:2"`

	Rate         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Miles        decimal.Decimal `gorm:"type:numeric(10,1);not null"`
	OriginCity   string          `gorm:"type:varchar(100)"`
	OriginState  string          `gorm:"type:varchar(2)"`
	DestCity     string          `gorm:"type:varchar(100)"`
	DestState    string          `gorm:"type:varchar(2)"`
	PickupDate   *time.Time
	DeliveryDate *time.Time
	Status       string `gorm:"type:varchar(20);not null;index"`
	CustomerName string `gorm:"type:varchar(200)"`

	DriverID       *uuid.UUID       `gorm:"type:uuid;index"`
	DriverName     string           `gorm:"type:varchar(200)"`
	DriverPayType  *string          `gorm:"type:varchar(20)"`
	DriverPayRate  *decimal.Decimal `gorm:"type:numeric(12,4)"`
	Driver2ID      *uuid.UUID       `gorm:"type:uuid;index"`
	Driver2Name    string           `gorm:"type:varchar(200)"`
	Driver2PayType *string          `gorm:"type:varchar(20)"`
	Driver2PayRate *decimal.Decimal `gorm:"type:numeric(12,4)"`
	IsTeamLoad     bool             `gorm:"not null;default:false"`
	DispatcherID   *uuid.UUID       `gorm:"type:uuid;index"`
	BrokerID       *uuid.UUID       `gorm:"type:uuid;index"`
	BrokerName     string           `gorm:"type:varchar(200)"`
	TruckID        *uuid.UUID       `gorm:"type:uuid"`
	TrailerID      *uuid.UUID       `gorm:"type:uuid"`

	HasDetention      bool            `gorm:"not null;default:false"`
	DetentionHours    decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	DetentionRate     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	HasLayover        bool            `gorm:"not null;default:false"`
	LayoverDays       decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	LayoverRate       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	HasLumper         bool            `gorm:"not null;default:false"`
	LumperFee         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	HasFSC            bool            `gorm:"not null;default:false"`
	FSCType           string          `gorm:"type:varchar(20)"`
	FSCRate           decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	HasTONU           bool            `gorm:"not null;default:false"`
	TONUFee           decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	OtherAccessorials decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	IsFactored          bool             `gorm:"not null;default:false"`
	FactoringCompanyID  *uuid.UUID       `gorm:"type:uuid"`
	FactoringFeePercent *decimal.Decimal `gorm:"type:numeric(5,2)"`
	FactoredDate        *time.Time

	DetentionAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	LayoverAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	LumperAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	FSCAmount         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TONUAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalAccessorials decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	GrandTotal        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	DriverBasePay      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DriverDetentionPay decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DriverLayoverPay   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DriverTotalGross   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Driver2Earnings    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalDriverPay     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	DispatcherCommissionAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	FactoringFee   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	FactoredAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	Notes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LoadModel) TableName() string {
	return "loads"
}

// ToDomain converts the persistence model to a domain Load
func (m *LoadModel) ToDomain() *dispatch.Load {
	load := &dispatch.Load{
		LoadNumber:   m.LoadNumber,
		Rate:         m.Rate,
		Miles:        m.Miles,
		OriginCity:   m.OriginCity,
		OriginState:  m.OriginState,
		DestCity:     m.DestCity,
		DestState:    m.DestState,
		PickupDate:   m.PickupDate,
		DeliveryDate: m.DeliveryDate,
		Status:       dispatch.LoadStatus(m.Status),
		CustomerName: m.CustomerName,

		Driver:       toDriverSlot(m.DriverID, m.DriverName, m.DriverPayType, m.DriverPayRate),
		Driver2:      toDriverSlot(m.Driver2ID, m.Driver2Name, m.Driver2PayType, m.Driver2PayRate),
		IsTeamLoad:   m.IsTeamLoad,
		DispatcherID: m.DispatcherID,
		BrokerID:     m.BrokerID,
		BrokerName:   m.BrokerName,
		TruckID:      m.TruckID,
		TrailerID:    m.TrailerID,

		Accessorials: dispatch.AccessorialInputs{
			HasDetention:      m.HasDetention,
			DetentionHours:    m.DetentionHours,
			DetentionRate:     m.DetentionRate,
			HasLayover:        m.HasLayover,
			LayoverDays:       m.LayoverDays,
			LayoverRate:       m.LayoverRate,
			HasLumper:         m.HasLumper,
			LumperFee:         m.LumperFee,
			HasFSC:            m.HasFSC,
			FSCType:           dispatch.FSCType(m.FSCType),
			FSCRate:           m.FSCRate,
			HasTONU:           m.HasTONU,
			TONUFee:           m.TONUFee,
			OtherAccessorials: m.OtherAccessorials,
		},

		IsFactored:          m.IsFactored,
		FactoringCompanyID:  m.FactoringCompanyID,
		FactoringFeePercent: m.FactoringFeePercent,
		FactoredDate:        m.FactoredDate,

		Financials: dispatch.DerivedFinancials{
			DetentionAmount:   m.DetentionAmount,
			LayoverAmount:     m.LayoverAmount,
			LumperAmount:      m.LumperAmount,
			FSCAmount:         m.FSCAmount,
			TONUAmount:        m.TONUAmount,
			TotalAccessorials: m.TotalAccessorials,
			GrandTotal:        m.GrandTotal,

			DriverBasePay:      m.DriverBasePay,
			DriverDetentionPay: m.DriverDetentionPay,
			DriverLayoverPay:   m.DriverLayoverPay,
			DriverTotalGross:   m.DriverTotalGross,
			Driver2Earnings:    m.Driver2Earnings,
			TotalDriverPay:     m.TotalDriverPay,

			DispatcherCommissionAmount: m.DispatcherCommissionAmount,

			FactoringFee:   m.FactoringFee,
			FactoredAmount: m.FactoredAmount,
		},

		Notes: m.Notes,
	}
	m.PopulateTenantAggregateRoot(&load.TenantAggregateRoot)
	return load
}

// FromDomain populates the persistence model from a domain Load
func (m *LoadModel) FromDomain(l *dispatch.Load) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.LoadNumber = l.LoadNumber

	m.Rate = l.Rate
	m.Miles = l.Miles
	m.OriginCity = l.OriginCity
	m.OriginState = l.OriginState
	m.DestCity = l.DestCity
	m.DestState = l.DestState
	m.PickupDate = l.PickupDate
	m.DeliveryDate = l.DeliveryDate
	m.Status = string(l.Status)
	m.CustomerName = l.CustomerName

	m.DriverID, m.DriverName, m.DriverPayType, m.DriverPayRate = fromDriverSlot(l.Driver)
	m.Driver2ID, m.Driver2Name, m.Driver2PayType, m.Driver2PayRate = fromDriverSlot(l.Driver2)
	m.IsTeamLoad = l.IsTeamLoad
	m.DispatcherID = l.DispatcherID
	m.BrokerID = l.BrokerID
	m.BrokerName = l.BrokerName
	m.TruckID = l.TruckID
	m.TrailerID = l.TrailerID

	m.HasDetention = l.Accessorials.HasDetention
	m.DetentionHours = l.Accessorials.DetentionHours
	m.DetentionRate = l.Accessorials.DetentionRate
	m.HasLayover = l.Accessorials.HasLayover
	m.LayoverDays = l.Accessorials.LayoverDays
	m.LayoverRate = l.Accessorials.LayoverRate
	m.HasLumper = l.Accessorials.HasLumper
	m.LumperFee = l.Accessorials.LumperFee
	m.HasFSC = l.Accessorials.HasFSC
	m.FSCType = string(l.Accessorials.FSCType)
	m.FSCRate = l.Accessorials.FSCRate
	m.HasTONU = l.Accessorials.HasTONU
	m.TONUFee = l.Accessorials.TONUFee
	m.OtherAccessorials = l.Accessorials.OtherAccessorials

	m.IsFactored = l.IsFactored
	m.FactoringCompanyID = l.FactoringCompanyID
	m.FactoringFeePercent = l.FactoringFeePercent
	m.FactoredDate = l.FactoredDate

	m.DetentionAmount = l.Financials.DetentionAmount
	m.LayoverAmount = l.Financials.LayoverAmount
	m.LumperAmount = l.Financials.LumperAmount
	m.FSCAmount = l.Financials.FSCAmount
	m.TONUAmount = l.Financials.TONUAmount
	m.TotalAccessorials = l.Financials.TotalAccessorials
	m.GrandTotal = l.Financials.GrandTotal

	m.DriverBasePay = l.Financials.DriverBasePay
	m.DriverDetentionPay = l.Financials.DriverDetentionPay
	m.DriverLayoverPay = l.Financials.DriverLayoverPay
	m.DriverTotalGross = l.Financials.DriverTotalGross
	m.Driver2Earnings = l.Financials.Driver2Earnings
	m.TotalDriverPay = l.Financials.TotalDriverPay

	m.DispatcherCommissionAmount = l.Financials.DispatcherCommissionAmount

	m.FactoringFee = l.Financials.FactoringFee
	m.FactoredAmount = l.Financials.FactoredAmount

	m.Notes = l.Notes
}

// LoadModelFromDomain creates a new persistence model from a domain Load
func LoadModelFromDomain(l *dispatch.Load) *LoadModel {
	m := &LoadModel{}
	m.FromDomain(l)
	return m
}

func toDriverSlot(id *uuid.UUID, name string, payType *string, payRate *decimal.Decimal) dispatch.DriverSlot {
	slot := dispatch.DriverSlot{
		DriverID:        id,
		DriverName:      name,
		PayRateOverride: payRate,
	}
	if payType != nil {
		t := fleet.PayType(*payType)
		slot.PayTypeOverride = &t
	}
	return slot
}

func fromDriverSlot(slot dispatch.DriverSlot) (*uuid.UUID, string, *string, *decimal.Decimal) {
	var payType *string
	if slot.PayTypeOverride != nil {
		t := slot.PayTypeOverride.String()
		payType = &t
	}
	return slot.DriverID, slot.DriverName, payType, slot.PayRateOverride
}

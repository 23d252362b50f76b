package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
// Sort fields come straight from query strings and are interpolated into ORDER BY,
// so anything outside the whitelist is rejected.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// LoadSortFields contains allowed sort fields for loads
var LoadSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"load_number":   true,
	"rate":          true,
	"miles":         true,
	"status":        true,
	"customer_name": true,
	"broker_name":   true,
	"pickup_date":   true,
	"delivery_date": true,
	"grand_total":   true,
}

// DriverSortFields contains allowed sort fields for drivers
var DriverSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"pay_type":   true,
	"hired_at":   true,
}

// DispatcherSortFields contains allowed sort fields for dispatchers
var DispatcherSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"status":          true,
	"commission_type": true,
	"commission_rate": true,
}

// BrokerSortFields contains allowed sort fields for brokers
var BrokerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"mc_number":  true,
	"status":     true,
}

// FactoringCompanySortFields contains allowed sort fields for factoring companies
var FactoringCompanySortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"fee_percentage": true,
	"is_default":     true,
	"status":         true,
}

// AuditEntrySortFields contains allowed sort fields for audit entries
var AuditEntrySortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"actor_uid":   true,
	"entity_type": true,
	"action":      true,
}

package types

const (
	EventTypeRegister         = "dns_register"
	EventTypeWithdraw         = "dns_withdraw"
	EventTypeDomainActive     = "dns_domain_active"
	EventTypeDomainAbsent     = "dns_domain_absent"
	EventTypeTransfer         = "dns_transfer"
	EventTypeSubdomainAdded   = "dns_subdomain_added"
	EventTypeSubdomainDeleted = "dns_subdomain_deleted"
	EventTypeRecordAdded      = "dns_record_added"
	EventTypeRecordDeleted    = "dns_record_deleted"

	AttributeKeyDomain        = "domain"
	AttributeKeyName          = "name"
	AttributeKeyOwner         = "owner"
	AttributeKeyFrom          = "from"
	AttributeKeyTo            = "to"
	AttributeKeyCost          = "cost"
	AttributeKeyLeaseStart    = "lease_start"
	AttributeKeyLeaseDuration = "lease_duration"
	AttributeKeyReason        = "reason"
	AttributeKeyRecordType    = "record_type"
	AttributeKeyRemoved       = "removed"

	WithdrawReasonOwner   = "owner"
	WithdrawReasonAdmin   = "admin"
	WithdrawReasonExpired = "expired"
)

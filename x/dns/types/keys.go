package types

import "cosmossdk.io/collections"

var (
	ModuleName = "dns"

	StoreKey = ModuleName

	GovModuleName = "gov"

	ParamsKey         = collections.NewPrefix("params/")
	AdminKey          = collections.NewPrefix("admin/")
	RegistryKey       = collections.NewPrefix("registry/value/")
	AccountIndexKey   = collections.NewPrefix("account/value/")
	SubdomainIndexKey = collections.NewPrefix("subdomain/value/")
	RecordStoreKey    = collections.NewPrefix("record/value/")
	OpsThisBlockKey   = collections.NewPrefix("ops/this_block/")
)

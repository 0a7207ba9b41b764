package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

type OwnerDomains struct {
	Owner string   `json:"owner"`
	Names []string `json:"names"`
}

type SubdomainEntry struct {
	Domain string   `json:"domain"`
	Names  []string `json:"names"`
}

type RecordEntry struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}

type GenesisState struct {
	Params     Params           `json:"params"`
	Admin      string           `json:"admin"`
	Domains    []TopDomain      `json:"domains"`
	Owners     []OwnerDomains   `json:"owners"`
	Subdomains []SubdomainEntry `json:"subdomains"`
	Records    []RecordEntry    `json:"records"`
}

// DefaultGenesis leaves Admin empty; it must be filled in before the state
// validates.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Domains:    []TopDomain{},
		Owners:     []OwnerDomains{},
		Subdomains: []SubdomainEntry{},
		Records:    []RecordEntry{},
	}
}

func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(gs.Admin); err != nil {
		return fmt.Errorf("invalid admin address: %w", err)
	}

	owners := make(map[string]string, len(gs.Domains))
	for _, d := range gs.Domains {
		l, err := ParseLabel(d.Name, false)
		if err != nil || l.String() != d.Name {
			return fmt.Errorf("domain %q is not a canonical top-level name", d.Name)
		}
		if _, ok := owners[d.Name]; ok {
			return fmt.Errorf("duplicated domain %s", d.Name)
		}
		if _, err := sdk.AccAddressFromBech32(d.Owner); err != nil {
			return fmt.Errorf("domain %s: invalid owner: %w", d.Name, err)
		}
		owners[d.Name] = d.Owner
	}

	indexed := make(map[string]struct{}, len(gs.Domains))
	seenOwner := make(map[string]struct{}, len(gs.Owners))
	for _, entry := range gs.Owners {
		if _, ok := seenOwner[entry.Owner]; ok {
			return fmt.Errorf("duplicated owner entry %s", entry.Owner)
		}
		seenOwner[entry.Owner] = struct{}{}
		if len(entry.Names) == 0 {
			return fmt.Errorf("owner %s has an empty domain list", entry.Owner)
		}
		for _, name := range entry.Names {
			if owners[name] != entry.Owner {
				return fmt.Errorf("owner %s lists %s which it does not own", entry.Owner, name)
			}
			if _, ok := indexed[name]; ok {
				return fmt.Errorf("domain %s indexed twice", name)
			}
			indexed[name] = struct{}{}
		}
	}
	if len(indexed) != len(owners) {
		return fmt.Errorf("account index covers %d of %d domains", len(indexed), len(owners))
	}

	listed := make(map[string]struct{})
	seenTop := make(map[string]struct{}, len(gs.Subdomains))
	for _, entry := range gs.Subdomains {
		if _, ok := owners[entry.Domain]; !ok {
			return fmt.Errorf("subdomains listed for unregistered domain %s", entry.Domain)
		}
		if _, ok := seenTop[entry.Domain]; ok {
			return fmt.Errorf("duplicated subdomain entry %s", entry.Domain)
		}
		seenTop[entry.Domain] = struct{}{}
		for _, name := range entry.Names {
			l, err := ParseLabel(name, true)
			if err != nil || l.String() != name || TopSuffix(l).String() != entry.Domain {
				return fmt.Errorf("subdomain %q does not belong to %s", name, entry.Domain)
			}
			listed[name] = struct{}{}
		}
	}

	seenRecord := make(map[string]struct{}, len(gs.Records))
	for _, entry := range gs.Records {
		if _, ok := listed[entry.Name]; !ok {
			return fmt.Errorf("records for unlisted subdomain %s", entry.Name)
		}
		if _, ok := seenRecord[entry.Name]; ok {
			return fmt.Errorf("duplicated record entry %s", entry.Name)
		}
		seenRecord[entry.Name] = struct{}{}
		if len(entry.Records) == 0 {
			return fmt.Errorf("empty record list for %s", entry.Name)
		}
		for i, r := range entry.Records {
			if !r.Type.Valid() {
				return fmt.Errorf("%s: records[%d] has invalid type", entry.Name, i)
			}
			if err := ValidateRecordValue(r.Value); err != nil {
				return fmt.Errorf("%s: records[%d]: %w", entry.Name, i, err)
			}
		}
	}

	return nil
}

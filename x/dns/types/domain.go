package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TopDomain is a Registry entry. Ownership of every subdomain and record under
// Name follows Owner.
type TopDomain struct {
	Name          string `json:"name"`
	Owner         string `json:"owner"`
	LeaseStart    uint64 `json:"lease_start"`
	LeaseDuration uint64 `json:"lease_duration"`
}

// ExpiresAt is the first instant, in milliseconds, at which the lease is over.
func (d TopDomain) ExpiresAt() uint64 { return d.LeaseStart + d.LeaseDuration }

func (d TopDomain) Expired(nowMs uint64) bool { return d.ExpiresAt() <= nowMs }

// DomainList is an ordered list of names. Insertion does not deduplicate.
type DomainList struct {
	Names []string `json:"names"`
}

func (l DomainList) Contains(name string) bool {
	for _, n := range l.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Without returns a copy of l with every occurrence of name removed.
func (l DomainList) Without(name string) DomainList {
	out := make([]string, 0, len(l.Names))
	for _, n := range l.Names {
		if n != name {
			out = append(out, n)
		}
	}
	return DomainList{Names: out}
}

func (l DomainList) Append(name string) DomainList {
	out := make([]string, 0, len(l.Names)+1)
	out = append(out, l.Names...)
	return DomainList{Names: append(out, name)}
}

func (l DomainList) Empty() bool { return len(l.Names) == 0 }

type RecordType int32

const (
	RecordTypeA RecordType = iota
	RecordTypeAAAA
	RecordTypeMX
	RecordTypeCNAME
	RecordTypeIPFS
)

var recordTypeNames = map[RecordType]string{
	RecordTypeA:     "A",
	RecordTypeAAAA:  "AAAA",
	RecordTypeMX:    "MX",
	RecordTypeCNAME: "CNAME",
	RecordTypeIPFS:  "IPFS",
}

func (t RecordType) String() string {
	if s, ok := recordTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("RecordType(%d)", int32(t))
}

func (t RecordType) Valid() bool {
	_, ok := recordTypeNames[t]
	return ok
}

// ParseRecordType accepts a record type name in any case.
func ParseRecordType(s string) (RecordType, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range recordTypeNames {
		if name == want {
			return t, nil
		}
	}
	return 0, ErrInvalidRequest.Wrapf("unknown record type %q", s)
}

func (t RecordType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid record type %d", int32(t))
	}
	return json.Marshal(t.String())
}

func (t *RecordType) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}
	parsed, err := ParseRecordType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Record is a resource record attached to a subdomain. TTL is advisory.
type Record struct {
	Type  RecordType `json:"type"`
	Value []byte     `json:"value"`
	TTL   uint32     `json:"ttl"`
}

func (r Record) Matches(t RecordType, value []byte) bool {
	return r.Type == t && bytes.Equal(r.Value, value)
}

type RecordList struct {
	Records []Record `json:"records"`
}

// Without drops every record matching (t, value).
func (l RecordList) Without(t RecordType, value []byte) RecordList {
	out := make([]Record, 0, len(l.Records))
	for _, r := range l.Records {
		if !r.Matches(t, value) {
			out = append(out, r)
		}
	}
	return RecordList{Records: out}
}

func (l RecordList) Append(r Record) RecordList {
	out := make([]Record, 0, len(l.Records)+1)
	out = append(out, l.Records...)
	return RecordList{Records: append(out, r)}
}

func (l RecordList) Empty() bool { return len(l.Records) == 0 }

func ValidateRecordValue(value []byte) error {
	if len(value) > RecordValueMaxLen {
		return ErrInvalidRequest.Wrapf("record value too long: %d > %d", len(value), RecordValueMaxLen)
	}
	return nil
}

package types

const (
	// LabelSize is the fixed width of a name buffer; longer names are rejected.
	LabelSize = 32
	// RecordValueMaxLen caps the value payload of a single record.
	RecordValueMaxLen = 1024
	// MinDuration and MaxDuration bound a registration lease, in milliseconds.
	MinDuration uint64 = 700_000_000
	MaxDuration uint64 = 20_000_000_000
	// DefaultMinNameLength is the shortest top-level name that may be registered.
	DefaultMinNameLength uint32 = 4
)

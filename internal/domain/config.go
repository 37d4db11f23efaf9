package domain

// Config represents the shipquote configuration loaded from shipquote.yaml.
type Config struct {
	Store     StoreConfig
	OrdersDir string
	Server    ServerConfig

	// Shipping holds rate overrides keyed by shipping kind.
	Shipping map[string]RateOverride
}

type StoreConfig struct {
	Driver    StoreDriver
	Path      string
	OnCorrupt CorruptPolicy
}

type ServerConfig struct {
	Addr string
}

// StoreDriver selects the OrderStore backend.
type StoreDriver string

const (
	DriverJSON   StoreDriver = "json"
	DriverSQLite StoreDriver = "sqlite"
)

// CorruptPolicy decides what Append does when the backing file exists but
// is not a valid record list.
type CorruptPolicy string

const (
	// CorruptRecover discards the unreadable content and starts a new list.
	// Prior records are lost.
	CorruptRecover CorruptPolicy = "recover"
	// CorruptBackup moves the unreadable file aside, then starts a new list.
	CorruptBackup CorruptPolicy = "backup"
	// CorruptFail returns ErrCorruptStore and leaves the file untouched.
	CorruptFail CorruptPolicy = "fail"
)

func (p CorruptPolicy) Valid() bool {
	switch p {
	case CorruptRecover, CorruptBackup, CorruptFail:
		return true
	}
	return false
}

func (d StoreDriver) Valid() bool {
	return d == DriverJSON || d == DriverSQLite
}

// DefaultConfig provides sane defaults if shipquote.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Driver:    DriverJSON,
			Path:      "orders.json",
			OnCorrupt: CorruptBackup,
		},
		OrdersDir: "orders",
		Server:    ServerConfig{Addr: ":8080"},
		Shipping:  map[string]RateOverride{},
	}
}

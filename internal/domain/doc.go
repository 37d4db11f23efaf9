// Package domain contains the core pricing model for shipquote: products,
// shipping strategies, orders and the persisted order record.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// net/http, or the filesystem. Infra/adapters map into/from these types.
package domain

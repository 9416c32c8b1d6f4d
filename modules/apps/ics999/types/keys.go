package types

import (
	"cosmossdk.io/collections"
)

const (
	// ModuleName defines the ICS-999 module name
	ModuleName = "ics999"

	// PortID is the default port id that the ics999 module binds to
	PortID = "ics999"

	// StoreKey is the store key string for ics999
	StoreKey = ModuleName

	// RouterKey is the message route for ics999
	RouterKey = ModuleName

	// Version defines the current version the ics999 module supports
	Version = "ics999-1"

	// DenomPrefix is the prefix of every voucher denomination minted by ics999
	DenomPrefix = ModuleName
)

var (
	// ParamsKey is the key of the module parameters
	ParamsKey = collections.NewPrefix(0)
	// HandlerKey is the key of the single handler slot
	HandlerKey = collections.NewPrefix(1)
	// AccountsKey is the prefix of the interchain account registry
	AccountsKey = collections.NewPrefix(2)
	// ActiveChannelsKey is the prefix of the connection to channel mapping
	ActiveChannelsKey = collections.NewPrefix(3)
	// DenomTracesKey is the prefix of the voucher denom traces
	DenomTracesKey = collections.NewPrefix(4)
	// TotalEscrowKey is the prefix of the total escrowed amount per denom
	TotalEscrowKey = collections.NewPrefix(5)
)

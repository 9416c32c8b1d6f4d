package types

import (
	"github.com/cosmos/cosmos-sdk/types/query"
)

// ConfigResponse is the response of the config query.
type ConfigResponse struct {
	ModuleAddress string `json:"module_address"`
	Params        Params `json:"params"`
}

// DenomHashResponse is the response of the denom hash query.
type DenomHashResponse struct {
	Hash  string `json:"hash"`
	Denom string `json:"denom"`
}

// DenomTracesResponse is a page of denom traces.
type DenomTracesResponse struct {
	DenomTraces []Trace             `json:"denom_traces"`
	Pagination  *query.PageResponse `json:"pagination,omitempty"`
}

// AccountsResponse is a page of registered interchain accounts.
type AccountsResponse struct {
	Accounts   []RegisteredAccount `json:"accounts"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// ActiveChannelsResponse is a page of active channels.
type ActiveChannelsResponse struct {
	ActiveChannels []ActiveChannel     `json:"active_channels"`
	Pagination     *query.PageResponse `json:"pagination,omitempty"`
}

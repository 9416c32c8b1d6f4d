package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
)

// ModuleCdc references the global ics999 module codec. It is only used to
// decode the channel acknowledgement envelope. The codec used to decode
// executed messages is provided by the application.
var ModuleCdc = codec.NewProtoCodec(codectypes.NewInterfaceRegistry())

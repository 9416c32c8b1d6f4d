package validate

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"
)

// EndpointRequest validates that the portID and channelID of a query are valid identifiers.
func EndpointRequest(portID, channelID string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if err := host.ChannelIdentifierValidator(channelID); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	return nil
}

// ConnectionRequest validates that the connectionID of a query is a valid identifier.
func ConnectionRequest(connectionID string) error {
	if err := host.ConnectionIdentifierValidator(connectionID); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	return nil
}

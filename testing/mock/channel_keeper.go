package mock

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// ChannelKeeper is an in-memory channel store standing in for the IBC core
// channel keeper.
type ChannelKeeper struct {
	channels map[string]channeltypes.Channel
}

// NewChannelKeeper returns an empty ChannelKeeper.
func NewChannelKeeper() *ChannelKeeper {
	return &ChannelKeeper{
		channels: make(map[string]channeltypes.Channel),
	}
}

func channelKey(portID, channelID string) string {
	return fmt.Sprintf("%s/%s", portID, channelID)
}

// SetChannel stores the channel end.
func (k *ChannelKeeper) SetChannel(portID, channelID string, channel channeltypes.Channel) {
	k.channels[channelKey(portID, channelID)] = channel
}

// GetChannel returns the channel end if it exists.
func (k *ChannelKeeper) GetChannel(_ sdk.Context, portID, channelID string) (channeltypes.Channel, bool) {
	channel, found := k.channels[channelKey(portID, channelID)]
	return channel, found
}

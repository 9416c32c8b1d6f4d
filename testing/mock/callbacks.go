package mock

import (
	"encoding/json"
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

var (
	_ types.PacketCallbackHandler = (*CallbackHandler)(nil)
	_ types.AccountFactory        = (*AccountFactory)(nil)
)

// ErrMockCallback is returned by handlers configured to fail.
var ErrMockCallback = errors.New("mock callback error")

// CallbackHandler records the packet lifecycle notifications it receives.
type CallbackHandler struct {
	// Fail makes every notification return ErrMockCallback after running
	// OnCallback.
	Fail bool
	// OnCallback is run before the notification is recorded.
	OnCallback func(ctx sdk.Context, sender sdk.AccAddress, msg types.CallbackMsg)

	Calls   []types.CallbackMsg
	Senders []sdk.AccAddress
}

// OnPacketLifecycleComplete implements types.PacketCallbackHandler.
func (h *CallbackHandler) OnPacketLifecycleComplete(ctx sdk.Context, sender sdk.AccAddress, msg types.CallbackMsg) error {
	if h.OnCallback != nil {
		h.OnCallback(ctx, sender, msg)
	}

	if h.Fail {
		return ErrMockCallback
	}

	h.Calls = append(h.Calls, msg)
	h.Senders = append(h.Senders, sender)
	return nil
}

// AccountFactory creates base accounts at an address derived from the
// controller and the registration data.
type AccountFactory struct {
	AccountKeeper types.AccountKeeper
	// Response overrides the JSON response if set.
	Response []byte
	// Err makes account creation fail.
	Err error
}

// FactoryAddress returns the address the factory creates for the message.
func FactoryAddress(msg types.FactoryMsg) sdk.AccAddress {
	key := append([]byte(msg.Endpoint.String()+"/"+msg.Controller+"/"), msg.Data...)
	return address.Module("mock-factory", key)
}

// CreateAccount implements types.AccountFactory.
func (f *AccountFactory) CreateAccount(ctx sdk.Context, msg types.FactoryMsg) ([]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}

	addr := FactoryAddress(msg)
	f.AccountKeeper.SetAccount(ctx, f.AccountKeeper.NewAccountWithAddress(ctx, addr))

	if f.Response != nil {
		return f.Response, nil
	}

	return json.Marshal(types.FactoryResponse{Address: addr.String()})
}

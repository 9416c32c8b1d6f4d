package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/internal/events"
	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

func accountKey(endpoint types.Endpoint, controller string) collections.Triple[string, string, string] {
	return collections.Join3(endpoint.PortID, endpoint.ChannelID, controller)
}

// GetInterchainAccount returns the interchain account registered for the
// controller on the given local endpoint.
func (k Keeper) GetInterchainAccount(ctx context.Context, endpoint types.Endpoint, controller string) (sdk.AccAddress, bool, error) {
	address, err := k.Accounts.Get(ctx, accountKey(endpoint, controller))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return nil, false, err
	}

	return addr, true, nil
}

// setInterchainAccount records the interchain account of a controller. An
// account can only be registered once per (endpoint, controller) pair.
func (k Keeper) setInterchainAccount(ctx sdk.Context, endpoint types.Endpoint, controller string, addr sdk.AccAddress) error {
	key := accountKey(endpoint, controller)

	has, err := k.Accounts.Has(ctx, key)
	if err != nil {
		return err
	}
	if has {
		return errorsmod.Wrapf(types.ErrAccountExists, "endpoint %s, controller %s", endpoint, controller)
	}

	if err := k.Accounts.Set(ctx, key, addr.String()); err != nil {
		return err
	}

	k.Logger(ctx).Info("registered interchain account", "endpoint", endpoint.String(), "controller", controller, "address", addr.String())
	events.EmitRegisterAccountEvent(ctx, endpoint, controller, addr)

	return nil
}

// instantiateAccount creates the base account backing a default
// registration. An existing account at the derived address is rejected so
// that nobody can take control of the address before it is registered.
func (k Keeper) instantiateAccount(ctx sdk.Context, addr sdk.AccAddress) ([]byte, error) {
	if existing := k.accountKeeper.GetAccount(ctx, addr); existing != nil {
		return nil, errorsmod.Wrapf(types.ErrAccountAlreadyInstantiated, "address %s", addr)
	}

	account := k.accountKeeper.NewAccountWithAddress(ctx, addr)
	k.accountKeeper.SetAccount(ctx, account)

	return addr, nil
}

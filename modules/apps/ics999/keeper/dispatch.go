package keeper

import (
	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

// replyMode selects how the failure of a sub-call affects its caller.
type replyMode int

const (
	// replyOnSuccess runs the sub-call on the caller's context. A failure
	// aborts the caller together with everything it has written so far.
	replyOnSuccess replyMode = iota
	// replyAlways runs the sub-call on a branched context that is only
	// written back on success. The caller regains control either way.
	replyAlways
)

// subCall is a side effecting step whose result is fed back to the caller.
type subCall func(ctx sdk.Context) ([]byte, error)

// dispatch runs the sub-call with the given reply mode.
func (Keeper) dispatch(ctx sdk.Context, mode replyMode, call subCall) ([]byte, error) {
	if mode == replyOnSuccess {
		return call(ctx)
	}

	return dispatchCached(ctx, call)
}

func dispatchCached(ctx sdk.Context, call subCall) (data []byte, err error) {
	// CacheContext returns a new context with the multi-store branched into a cached storage object
	// writeCache is called only if the sub-call succeeds, performing state transitions atomically
	cacheCtx, writeCache := ctx.CacheContext()

	defer func() {
		if r := recover(); r != nil {
			// out of gas is not recoverable since the gas meter is shared
			if _, ok := r.(storetypes.ErrorOutOfGas); ok {
				panic(r)
			}
			data, err = nil, errorsmod.Wrapf(ibcerrors.ErrLogic, "sub-call panicked: %v", r)
		}
	}()

	data, err = call(cacheCtx)
	if err != nil {
		return nil, err
	}

	writeCache()
	return data, nil
}

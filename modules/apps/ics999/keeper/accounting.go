package keeper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/cosmos/ics999/modules/apps/ics999/internal/events"
	"github.com/cosmos/ics999/modules/apps/ics999/types"

	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

// escrow locks a coin that is already held by the module account. Only the
// escrow total is recorded.
func (k Keeper) escrow(ctx sdk.Context, coin sdk.Coin) error {
	total := k.GetTotalEscrowForDenom(ctx, coin.Denom)
	if err := k.SetTotalEscrowForDenom(ctx, total.Add(coin)); err != nil {
		return err
	}

	events.EmitAccountingEvent(ctx, types.EventTypeEscrow, coin, k.GetModuleAddress())
	return nil
}

// release sends a previously escrowed coin from the module account to the
// recipient.
func (k Keeper) release(ctx sdk.Context, coin sdk.Coin, to sdk.AccAddress) error {
	total := k.GetTotalEscrowForDenom(ctx, coin.Denom)
	if total.Amount.LT(coin.Amount) {
		return errorsmod.Wrapf(ibcerrors.ErrInsufficientFunds, "cannot release %s, only %s escrowed", coin, total)
	}

	if err := k.sendFromModule(ctx, coin, to); err != nil {
		return err
	}

	if err := k.SetTotalEscrowForDenom(ctx, total.Sub(coin)); err != nil {
		return err
	}

	events.EmitAccountingEvent(ctx, types.EventTypeRelease, coin, to)
	return nil
}

// mint creates a voucher in the module account and forwards it to the
// recipient.
func (k Keeper) mint(ctx sdk.Context, coin sdk.Coin, to sdk.AccAddress) error {
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, sdk.NewCoins(coin)); err != nil {
		return errorsmod.Wrap(err, "failed to mint ICS-999 voucher")
	}

	if err := k.sendFromModule(ctx, coin, to); err != nil {
		return err
	}

	events.EmitAccountingEvent(ctx, types.EventTypeMint, coin, to)
	return nil
}

// burn retires a voucher held by the module account.
func (k Keeper) burn(ctx sdk.Context, coin sdk.Coin) error {
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(coin)); err != nil {
		// NOTE: should not happen as the module account was
		// previously credited with the attached funds
		return errorsmod.Wrap(err, "failed to burn ICS-999 voucher")
	}

	events.EmitAccountingEvent(ctx, types.EventTypeBurn, coin, k.GetModuleAddress())
	return nil
}

func (k Keeper) sendFromModule(ctx sdk.Context, coin sdk.Coin, to sdk.AccAddress) error {
	if k.bankKeeper.BlockedAddr(to) {
		return errorsmod.Wrapf(ibcerrors.ErrUnauthorized, "%s is not allowed to receive funds", to)
	}

	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, sdk.NewCoins(coin))
}

// GetTotalEscrowForDenom gets the total amount of source chain tokens that
// are in escrow, keyed by the denomination.
func (k Keeper) GetTotalEscrowForDenom(ctx context.Context, denom string) sdk.Coin {
	amount, err := k.TotalEscrow.Get(ctx, denom)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return sdk.NewCoin(denom, sdkmath.ZeroInt())
		}
		panic(err)
	}

	return sdk.NewCoin(denom, amount)
}

// SetTotalEscrowForDenom stores the total amount of source chain tokens that
// are in escrow. A zero amount removes the entry.
func (k Keeper) SetTotalEscrowForDenom(ctx context.Context, coin sdk.Coin) error {
	if coin.Amount.IsNegative() {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidCoins, "amount in denom %s cannot be negative: %s", coin.Denom, coin.Amount)
	}

	if coin.Amount.IsZero() {
		return k.TotalEscrow.Remove(ctx, coin.Denom)
	}

	return k.TotalEscrow.Set(ctx, coin.Denom, coin.Amount)
}

// GetAllTotalEscrowed returns the escrow information for all the denominations.
func (k Keeper) GetAllTotalEscrowed(ctx context.Context) (sdk.Coins, error) {
	var escrows sdk.Coins
	err := k.TotalEscrow.Walk(ctx, nil, func(denom string, amount sdkmath.Int) (bool, error) {
		escrows = escrows.Add(sdk.NewCoin(denom, amount))
		return false, nil
	})

	return escrows, err
}

// traceOf returns the trace of a local denom. Denoms without a stored trace
// are native to this chain.
func (k Keeper) traceOf(ctx context.Context, denom string) (types.TraceItem, error) {
	trace, err := k.DenomTraces.Get(ctx, denom)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.NewTraceItem(denom), nil
		}
		return types.TraceItem{}, err
	}

	return trace, nil
}

// registerVoucher stores the trace of a voucher and its bank metadata if
// the voucher did not exist yet. It returns true for a new voucher.
func (k Keeper) registerVoucher(ctx sdk.Context, trace types.TraceItem) (bool, error) {
	denom := trace.IBCDenom()

	has, err := k.DenomTraces.Has(ctx, denom)
	if err != nil || has {
		return false, err
	}

	if err := k.DenomTraces.Set(ctx, denom, trace); err != nil {
		return false, err
	}

	if !k.bankKeeper.HasDenomMetaData(ctx, denom) {
		k.bankKeeper.SetDenomMetaData(ctx, banktypes.Metadata{
			Description: fmt.Sprintf("ICS-999 voucher from %s", trace),
			DenomUnits: []*banktypes.DenomUnit{
				{
					Denom:    trace.BaseDenom,
					Exponent: 0,
				},
			},
			Base:    denom,
			Display: trace.String(),
			Name:    fmt.Sprintf("%s ICS-999 voucher", trace),
			Symbol:  strings.ToUpper(trace.BaseDenom),
		})
	}

	events.EmitDenomTraceEvent(ctx, denom, trace)
	return true, nil
}

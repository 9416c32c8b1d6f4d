package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

// RegisterInvariants registers all ics999 invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-escrow-per-denom", k.TotalEscrowInvariant)
	ir.RegisterRoute(types.ModuleName, "handler-slot", k.HandlerInvariant)
}

// AllInvariants runs all invariants of the ics999 module.
func AllInvariants(k *Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if msg, broken := k.TotalEscrowInvariant(ctx); broken {
			return msg, broken
		}
		return k.HandlerInvariant(ctx)
	}
}

// TotalEscrowInvariant checks that the module account holds at least the
// recorded escrow of every native denom. It returns a description of the
// broken invariant and true if the check fails.
func (k Keeper) TotalEscrowInvariant(ctx sdk.Context) (string, bool) {
	expected, err := k.GetAllTotalEscrowed(ctx)
	if err != nil {
		return fmt.Sprintf("%s: failed to read escrow records: %v", types.ModuleName, err), true
	}

	actual := k.bankKeeper.GetAllBalances(ctx, k.GetModuleAddress())

	// the actual escrowed amount must be greater than or equal to the expected amount for all denominations
	if !actual.IsAllGTE(expected) {
		return fmt.Sprintf(
			"%s: total escrow per denom invariance\nfound denom(s) with total escrow amount lower than expected:\nactual total escrowed: %s\nexpected total escrowed: %s",
			types.ModuleName, actual, expected,
		), true
	}

	return "", false
}

// HandlerInvariant checks that the handler slot is empty.
func (k Keeper) HandlerInvariant(ctx sdk.Context) (string, bool) {
	has, err := k.Handler.Has(ctx)
	if err != nil || has {
		return fmt.Sprintf("%s: handler slot is occupied between transactions", types.ModuleName), true
	}

	return "", false
}

package types

import (
	"sort"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Coins is a denomination keyed accumulator of token amounts. Unlike sdk.Coins
// it does not require its input to be sorted or deduplicated, which makes it
// suitable for folding the coins referenced by an action queue.
type Coins map[string]sdkmath.Int

// NewCoins returns an empty ledger.
func NewCoins() Coins {
	return Coins{}
}

// CoinsFromSDK folds a list of coins into a ledger.
func CoinsFromSDK(coins sdk.Coins) (Coins, error) {
	ledger := NewCoins()
	for _, coin := range coins {
		if err := ledger.Add(coin); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// Add increases the amount recorded for the coin's denom. It fails if the
// resulting amount does not fit into sdkmath.Int.
func (c Coins) Add(coin sdk.Coin) error {
	if coin.Amount.IsNil() || coin.Amount.IsZero() {
		return nil
	}

	current, ok := c[coin.Denom]
	if !ok {
		c[coin.Denom] = coin.Amount
		return nil
	}

	sum, err := current.SafeAdd(coin.Amount)
	if err != nil {
		return errorsmod.Wrapf(ErrOverflow, "%s + %s%s", current, coin.Amount, coin.Denom)
	}

	c[coin.Denom] = sum
	return nil
}

// Denoms returns the denominations in the ledger in ascending order.
func (c Coins) Denoms() []string {
	denoms := make([]string, 0, len(c))
	for denom := range c {
		denoms = append(denoms, denom)
	}
	sort.Strings(denoms)

	return denoms
}

// Equal reports whether both ledgers hold the same amount for every denom.
func (c Coins) Equal(other Coins) bool {
	if len(c) != len(other) {
		return false
	}

	for denom, amount := range c {
		otherAmount, ok := other[denom]
		if !ok || !amount.Equal(otherAmount) {
			return false
		}
	}

	return true
}

// ToSDK converts the ledger into a sorted sdk.Coins.
func (c Coins) ToSDK() sdk.Coins {
	coins := make(sdk.Coins, 0, len(c))
	for _, denom := range c.Denoms() {
		coins = append(coins, sdk.NewCoin(denom, c[denom]))
	}

	return coins
}

// String implements fmt.Stringer. Entries are sorted by denom.
func (c Coins) String() string {
	if len(c) == 0 {
		return "[]"
	}

	parts := make([]string, 0, len(c))
	for _, denom := range c.Denoms() {
		parts = append(parts, c[denom].String()+denom)
	}

	return strings.Join(parts, ",")
}

package ibctesting

import (
	"testing"
	"time"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"

	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/codec"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	moduletestutil "github.com/cosmos/cosmos-sdk/types/module/testutil"
	"github.com/cosmos/cosmos-sdk/x/auth"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/x/bank"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	ics999 "github.com/cosmos/ics999/modules/apps/ics999"
	"github.com/cosmos/ics999/modules/apps/ics999/keeper"
	"github.com/cosmos/ics999/modules/apps/ics999/types"
	"github.com/cosmos/ics999/testing/mock"

	connectiontypes "github.com/cosmos/ibc-go/v10/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

const (
	// FaucetModuleName is the module account used to fund test accounts.
	FaucetModuleName = "faucet"
	// GovModuleName is the module whose account is the ics999 authority.
	GovModuleName = "gov"
)

// DefaultCoinAmount is the amount of every denom a funded test account starts with.
var DefaultCoinAmount = sdkmath.NewInt(1_000_000)

// TestChain is an in-memory chain running the ics999 module on top of real
// auth and bank keepers. The IBC core is replaced by mocks, packets are
// delivered by the Coordinator.
type TestChain struct {
	testing.TB

	Coordinator *Coordinator
	ChainID     string

	Codec             codec.Codec
	InterfaceRegistry codectypes.InterfaceRegistry

	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.BaseKeeper
	ICS999Keeper  *keeper.Keeper
	IBCModule     ics999.IBCModule
	ChannelKeeper *mock.ChannelKeeper
	ICS4Wrapper   *mock.ICS4Wrapper
	MsgRouter     *baseapp.MsgServiceRouter
	QueryRouter   *baseapp.GRPCQueryRouter

	// SenderAccount is a funded account owned by the test
	SenderAccount sdk.AccAddress
	// RelayerAccount receives relayer fees
	RelayerAccount sdk.AccAddress

	ctx               sdk.Context
	nextChannelSeq    uint64
	nextConnectionSeq uint64
}

// NewTestChain initializes a new TestChain with the ics999 module wired to
// in-memory stores.
func NewTestChain(tb testing.TB, coord *Coordinator, chainID string) *TestChain {
	tb.Helper()

	encodingCfg := moduletestutil.MakeTestEncodingConfig(auth.AppModule{}, bank.AppModule{})

	keys := storetypes.NewKVStoreKeys(authtypes.StoreKey, banktypes.StoreKey, types.StoreKey)

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(tb, cms.LoadLatestVersion())

	ctx := sdk.NewContext(cms, cmtproto.Header{
		ChainID: chainID,
		Height:  1,
		Time:    coord.CurrentTime,
	}, false, log.NewNopLogger())

	maccPerms := map[string][]string{
		types.ModuleName: {authtypes.Minter, authtypes.Burner},
		FaucetModuleName: {authtypes.Minter},
		GovModuleName:    nil,
	}

	authority := authtypes.NewModuleAddress(GovModuleName).String()

	accountKeeper := authkeeper.NewAccountKeeper(
		encodingCfg.Codec,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		addresscodec.NewBech32Codec(sdk.Bech32MainPrefix),
		sdk.Bech32MainPrefix,
		authority,
	)

	blockedAddrs := map[string]bool{
		authtypes.NewModuleAddress(FaucetModuleName).String(): true,
		authtypes.NewModuleAddress(GovModuleName).String():    true,
	}

	bankKeeper := bankkeeper.NewBaseKeeper(
		encodingCfg.Codec,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		accountKeeper,
		blockedAddrs,
		authority,
		log.NewNopLogger(),
	)
	require.NoError(tb, bankKeeper.SetParams(ctx, banktypes.DefaultParams()))

	msgRouter := baseapp.NewMsgServiceRouter()
	msgRouter.SetInterfaceRegistry(encodingCfg.InterfaceRegistry)
	banktypes.RegisterMsgServer(msgRouter, bankkeeper.NewMsgServerImpl(bankKeeper))

	queryRouter := baseapp.NewGRPCQueryRouter()
	queryRouter.SetInterfaceRegistry(encodingCfg.InterfaceRegistry)
	banktypes.RegisterQueryServer(queryRouter, bankKeeper)

	channelKeeper := mock.NewChannelKeeper()
	ics4Wrapper := mock.NewICS4Wrapper(channelKeeper)

	ics999Keeper := keeper.NewKeeper(
		encodingCfg.Codec,
		runtime.NewKVStoreService(keys[types.StoreKey]),
		ics4Wrapper,
		channelKeeper,
		accountKeeper,
		bankKeeper,
		msgRouter,
		queryRouter,
		authority,
	)

	chain := &TestChain{
		TB:                tb,
		Coordinator:       coord,
		ChainID:           chainID,
		Codec:             encodingCfg.Codec,
		InterfaceRegistry: encodingCfg.InterfaceRegistry,
		AccountKeeper:     accountKeeper,
		BankKeeper:        bankKeeper,
		ICS999Keeper:      &ics999Keeper,
		ChannelKeeper:     channelKeeper,
		ICS4Wrapper:       ics4Wrapper,
		MsgRouter:         msgRouter,
		QueryRouter:       queryRouter,
		SenderAccount:     newAccAddress(),
		RelayerAccount:    newAccAddress(),
		ctx:               ctx,
	}
	chain.IBCModule = ics999.NewIBCModule(chain.ICS999Keeper)

	require.NoError(tb, chain.ICS999Keeper.InitGenesis(ctx, *types.DefaultGenesisState()))

	return chain
}

func newAccAddress() sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
}

// GetContext returns the current context of the chain with a fresh event
// manager.
func (chain *TestChain) GetContext() sdk.Context {
	return chain.ctx.WithEventManager(sdk.NewEventManager())
}

// GetTime returns the current block time of the chain.
func (chain *TestChain) GetTime() time.Time {
	return chain.ctx.BlockTime()
}

// SetTime sets the block time of the chain.
func (chain *TestChain) SetTime(t time.Time) {
	chain.ctx = chain.ctx.WithBlockTime(t)
}

// NextChannelID returns a fresh channel identifier.
func (chain *TestChain) NextChannelID() string {
	channelID := channeltypes.FormatChannelIdentifier(chain.nextChannelSeq)
	chain.nextChannelSeq++
	return channelID
}

// NextConnectionID returns a fresh connection identifier.
func (chain *TestChain) NextConnectionID() string {
	connectionID := connectiontypes.FormatConnectionIdentifier(chain.nextConnectionSeq)
	chain.nextConnectionSeq++
	return connectionID
}

// NewAccount returns a new address funded with DefaultCoinAmount of each
// denom.
func (chain *TestChain) NewAccount(denoms ...string) sdk.AccAddress {
	addr := newAccAddress()
	for _, denom := range denoms {
		chain.Fund(addr, sdk.NewCoin(denom, DefaultCoinAmount))
	}
	return addr
}

// Fund mints coins to the given address.
func (chain *TestChain) Fund(addr sdk.AccAddress, coins ...sdk.Coin) {
	chain.Helper()

	amount := sdk.NewCoins(coins...)
	require.NoError(chain, chain.BankKeeper.MintCoins(chain.ctx, FaucetModuleName, amount))
	require.NoError(chain, chain.BankKeeper.SendCoinsFromModuleToAccount(chain.ctx, FaucetModuleName, addr, amount))
}

// Balance returns the balance of the address in the given denom.
func (chain *TestChain) Balance(addr sdk.AccAddress, denom string) sdkmath.Int {
	return chain.BankKeeper.GetBalance(chain.ctx, addr, denom).Amount
}

// ModuleAddress returns the address of the ics999 module account.
func (chain *TestChain) ModuleAddress() sdk.AccAddress {
	return chain.ICS999Keeper.GetModuleAddress()
}

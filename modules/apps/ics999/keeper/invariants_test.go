package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/keeper"
	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

type invariantRegistry map[string]sdk.Invariant

func (r invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r[moduleName+"/"+route] = invar
}

func (suite *KeeperTestSuite) TestRegisterInvariants() {
	registry := invariantRegistry{}
	keeper.RegisterInvariants(registry, suite.chainA.ICS999Keeper)

	suite.Require().Len(registry, 2)
	suite.Require().Contains(registry, types.ModuleName+"/total-escrow-per-denom")
	suite.Require().Contains(registry, types.ModuleName+"/handler-slot")

	ctx := suite.chainA.GetContext()
	for route, invar := range registry {
		msg, broken := invar(ctx)
		suite.Require().False(broken, "%s: %s", route, msg)
	}

	_, broken := keeper.AllInvariants(suite.chainA.ICS999Keeper)(ctx)
	suite.Require().False(broken)

	// the registered routes observe later state changes
	suite.Require().NoError(suite.chainA.ICS999Keeper.SetTotalEscrowForDenom(ctx, sdk.NewInt64Coin("uatom", 1)))

	_, broken = registry[types.ModuleName+"/total-escrow-per-denom"](ctx)
	suite.Require().True(broken)

	_, broken = keeper.AllInvariants(suite.chainA.ICS999Keeper)(ctx)
	suite.Require().True(broken)
}

func (suite *KeeperTestSuite) TestTotalEscrowInvariant() {
	testCases := []struct {
		name     string
		malleate func()
		broken   bool
	}{
		{
			"success: nothing escrowed",
			func() {},
			false,
		},
		{
			"success: module holds the escrow",
			func() {
				suite.chainA.Fund(suite.chainA.ModuleAddress(), sdk.NewInt64Coin("uatom", 100))
				suite.Require().NoError(suite.chainA.ICS999Keeper.SetTotalEscrowForDenom(suite.chainA.GetContext(), sdk.NewInt64Coin("uatom", 100)))
			},
			false,
		},
		{
			"failure: escrow exceeds the module balance",
			func() {
				suite.chainA.Fund(suite.chainA.ModuleAddress(), sdk.NewInt64Coin("uatom", 99))
				suite.Require().NoError(suite.chainA.ICS999Keeper.SetTotalEscrowForDenom(suite.chainA.GetContext(), sdk.NewInt64Coin("uatom", 100)))
			},
			true,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			tc.malleate()

			msg, broken := suite.chainA.ICS999Keeper.TotalEscrowInvariant(suite.chainA.GetContext())
			suite.Require().Equal(tc.broken, broken, msg)
		})
	}
}

func (suite *KeeperTestSuite) TestHandlerInvariant() {
	ctx := suite.chainA.GetContext()
	k := suite.chainA.ICS999Keeper

	_, broken := k.HandlerInvariant(ctx)
	suite.Require().False(broken)

	suite.Require().NoError(k.Handler.Set(ctx, types.Handler{}))

	_, broken = k.HandlerInvariant(ctx)
	suite.Require().True(broken)
}

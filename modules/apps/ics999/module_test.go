package ics999_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999"
	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

type routeRecorder []string

func (r *routeRecorder) RegisterRoute(moduleName, route string, _ sdk.Invariant) {
	*r = append(*r, moduleName+"/"+route)
}

func (suite *ICS999TestSuite) TestRegisterInvariants() {
	var routes routeRecorder
	ics999.NewAppModule(suite.chainA.ICS999Keeper).RegisterInvariants(&routes)

	suite.Require().ElementsMatch([]string{
		types.ModuleName + "/total-escrow-per-denom",
		types.ModuleName + "/handler-slot",
	}, []string(routes))
}

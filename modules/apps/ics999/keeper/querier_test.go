package keeper_test

import (
	"encoding/hex"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
)

func (suite *KeeperTestSuite) TestQueryConfig() {
	ctx := suite.chainA.GetContext()
	res := suite.chainA.ICS999Keeper.QueryConfig(ctx)

	suite.Require().Equal(suite.chainA.ModuleAddress().String(), res.ModuleAddress)
	suite.Require().Equal(types.DefaultParams(), res.Params)
}

func (suite *KeeperTestSuite) TestQueryDenomHash() {
	trace := types.NewTraceItem("uatom").AddHop(types.NewEndpoint(types.PortID, "channel-0"))

	res, err := suite.chainA.ICS999Keeper.QueryDenomHash(trace)
	suite.Require().NoError(err)
	suite.Require().Equal(hex.EncodeToString(trace.Hash()), res.Hash)
	suite.Require().Equal(trace.IBCDenom(), res.Denom)

	_, err = suite.chainA.ICS999Keeper.QueryDenomHash(types.TraceItem{})
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))
}

func (suite *KeeperTestSuite) TestQueryDenomTraces() {
	path := suite.setupPath(suite.chainA, suite.chainB)
	sender := suite.chainA.NewAccount("uatom", "uosmo")
	recipient := suite.chainB.NewAccount()

	actions := []types.Action{
		types.NewTransferAction("uatom", sdkmath.NewInt(1), recipient.String()),
		types.NewTransferAction("uosmo", sdkmath.NewInt(1), recipient.String()),
	}
	packet := suite.act(path.EndpointA, sender, actions, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1), sdk.NewInt64Coin("uosmo", 1)), nil)
	suite.Require().True(suite.relay(path, packet).Success())

	ctx := suite.chainB.GetContext()
	k := suite.chainB.ICS999Keeper

	res, err := k.QueryDenomTraces(ctx, &query.PageRequest{Limit: 1, CountTotal: true})
	suite.Require().NoError(err)
	suite.Require().Len(res.DenomTraces, 1)
	suite.Require().Equal(uint64(2), res.Pagination.Total)
	suite.Require().NotNil(res.Pagination.NextKey)

	res, err = k.QueryDenomTraces(ctx, &query.PageRequest{Key: res.Pagination.NextKey})
	suite.Require().NoError(err)
	suite.Require().Len(res.DenomTraces, 1)

	for _, denom := range []string{voucherDenom("uatom", path.EndpointB), voucherDenom("uosmo", path.EndpointB)} {
		trace, err := k.QueryDenomTrace(ctx, denom)
		suite.Require().NoError(err)
		suite.Require().Equal(denom, trace.Denom)
	}

	_, err = k.QueryDenomTrace(ctx, "ics999/unknown")
	suite.Require().Equal(codes.NotFound, status.Code(err))

	_, err = k.QueryDenomTrace(ctx, "")
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))
}

func (suite *KeeperTestSuite) TestQueryAccount() {
	path := suite.setupPath(suite.chainA, suite.chainB)
	controller := suite.chainA.NewAccount()

	packet := suite.act(path.EndpointA, controller, []types.Action{types.NewRegisterAccountAction(nil)}, nil, nil)
	suite.Require().True(suite.relay(path, packet).Success())

	ctx := suite.chainB.GetContext()
	k := suite.chainB.ICS999Keeper
	endpoint := path.EndpointB.Endpoint()

	testCases := []struct {
		name       string
		portID     string
		channelID  string
		controller string
		expCode    codes.Code
	}{
		{
			"success",
			endpoint.PortID,
			endpoint.ChannelID,
			controller.String(),
			codes.OK,
		},
		{
			"failure: unknown controller",
			endpoint.PortID,
			endpoint.ChannelID,
			suite.chainA.SenderAccount.String(),
			codes.NotFound,
		},
		{
			"failure: invalid channel identifier",
			endpoint.PortID,
			"x",
			controller.String(),
			codes.InvalidArgument,
		},
		{
			"failure: empty controller",
			endpoint.PortID,
			endpoint.ChannelID,
			"",
			codes.InvalidArgument,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			res, err := k.QueryAccount(ctx, tc.portID, tc.channelID, tc.controller)
			suite.Require().Equal(tc.expCode, status.Code(err))

			if tc.expCode == codes.OK {
				suite.Require().Equal(interchainAccount(path.EndpointB, controller).String(), res.Address)
				suite.Require().Equal(endpoint, res.Endpoint)
			}
		})
	}

	accounts, err := k.QueryAccounts(ctx, nil)
	suite.Require().NoError(err)
	suite.Require().Len(accounts.Accounts, 1)
	suite.Require().Equal(controller.String(), accounts.Accounts[0].Controller)
}

func (suite *KeeperTestSuite) TestQueryActiveChannel() {
	path := suite.setupPath(suite.chainA, suite.chainB)
	k := suite.chainA.ICS999Keeper
	ctx := suite.chainA.GetContext()

	res, err := k.QueryActiveChannel(ctx, path.EndpointA.ConnectionID)
	suite.Require().NoError(err)
	suite.Require().Equal(types.ActiveChannel{ConnectionID: path.EndpointA.ConnectionID, ChannelID: path.EndpointA.ChannelID}, res)

	_, err = k.QueryActiveChannel(ctx, "connection-99")
	suite.Require().Equal(codes.NotFound, status.Code(err))

	_, err = k.QueryActiveChannel(ctx, "")
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))

	channels, err := k.QueryActiveChannels(ctx, nil)
	suite.Require().NoError(err)
	suite.Require().Equal([]types.ActiveChannel{res}, channels.ActiveChannels)
}

func (suite *KeeperTestSuite) TestQueryTotalEscrow() {
	k := suite.chainA.ICS999Keeper
	ctx := suite.chainA.GetContext()

	suite.Require().NoError(k.SetTotalEscrowForDenom(ctx, sdk.NewInt64Coin("uatom", 7)))

	res, err := k.QueryTotalEscrow(ctx, "uatom")
	suite.Require().NoError(err)
	suite.Require().Equal(int64(7), res.Amount.Int64())

	res, err = k.QueryTotalEscrow(ctx, "uosmo")
	suite.Require().NoError(err)
	suite.Require().True(res.Amount.IsZero())

	_, err = k.QueryTotalEscrow(ctx, "1")
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))
}

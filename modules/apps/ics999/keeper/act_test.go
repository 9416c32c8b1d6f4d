package keeper_test

import (
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
	ibctesting "github.com/cosmos/ics999/testing"

	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

func (suite *KeeperTestSuite) TestAct() {
	var (
		sender       sdk.AccAddress
		connectionID string
		actions      []types.Action
		funds        sdk.Coins
		timeout      *uint64
		relayerFee   *types.RelayerFee
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success",
			func() {},
			nil,
		},
		{
			"success: no funds attached",
			func() {
				actions = []types.Action{types.NewRegisterAccountAction(nil)}
				funds = nil
			},
			nil,
		},
		{
			"success: with relayer fees",
			func() {
				src, dest := sdk.NewInt64Coin("uosmo", 5), sdk.NewInt64Coin("uatom", 10)
				relayerFee = &types.RelayerFee{Src: &src, Dest: &dest}
				funds = sdk.NewCoins(sdk.NewInt64Coin("uatom", 110), src)
			},
			nil,
		},
		{
			"success: absolute timeout",
			func() {
				deadline := uint64(suite.chainA.GetTime().Unix()) + 10
				timeout = &deadline
			},
			nil,
		},
		{
			"failure: send disabled",
			func() {
				suite.Require().NoError(suite.chainA.ICS999Keeper.SetParams(suite.chainA.GetContext(), types.NewParams(false, true, types.DefaultTimeoutSecs)))
			},
			types.ErrSendDisabled,
		},
		{
			"failure: empty action queue",
			func() {
				actions = []types.Action{}
				funds = nil
			},
			types.ErrEmptyActionQueue,
		},
		{
			"failure: invalid action",
			func() {
				actions = []types.Action{{}}
				funds = nil
			},
			types.ErrInvalidAction,
		},
		{
			"failure: invalid relayer fee",
			func() {
				relayerFee = &types.RelayerFee{Src: &sdk.Coin{Denom: "uatom", Amount: sdkmath.NewInt(-1)}}
			},
			ibcerrors.ErrInvalidCoins,
		},
		{
			"failure: no active channel on connection",
			func() {
				connectionID = "connection-99"
			},
			types.ErrActiveChannelNotFound,
		},
		{
			"failure: timeout in the past",
			func() {
				deadline := uint64(suite.chainA.GetTime().Unix())
				timeout = &deadline
			},
			types.ErrInvalidTimeout,
		},
		{
			"failure: timeout past the largest packet timestamp",
			func() {
				deadline := types.MaxTimeoutSecs + 1
				timeout = &deadline
			},
			types.ErrInvalidTimeout,
		},
		{
			"failure: timeout in the year 5138",
			func() {
				deadline := uint64(100_000_000_000)
				timeout = &deadline
			},
			types.ErrInvalidTimeout,
		},
		{
			"failure: default timeout overflows the packet timestamp",
			func() {
				suite.Require().NoError(suite.chainA.ICS999Keeper.SetParams(suite.chainA.GetContext(), types.NewParams(true, true, types.MaxTimeoutSecs)))
			},
			types.ErrInvalidTimeout,
		},
		{
			"success: latest representable timeout",
			func() {
				deadline := types.MaxTimeoutSecs
				timeout = &deadline
			},
			nil,
		},
		{
			"failure: more funds than required",
			func() {
				funds = sdk.NewCoins(sdk.NewInt64Coin("uatom", 101))
			},
			types.ErrFundsMismatch,
		},
		{
			"failure: fewer funds than required",
			func() {
				funds = sdk.NewCoins(sdk.NewInt64Coin("uatom", 99))
			},
			types.ErrFundsMismatch,
		},
		{
			"failure: unexpected denom attached",
			func() {
				funds = sdk.NewCoins(sdk.NewInt64Coin("uatom", 100), sdk.NewInt64Coin("uosmo", 1))
			},
			types.ErrFundsMismatch,
		},
		{
			"failure: relayer fee not attached",
			func() {
				dest := sdk.NewInt64Coin("uatom", 10)
				relayerFee = &types.RelayerFee{Dest: &dest}
			},
			types.ErrFundsMismatch,
		},
		{
			"failure: sender balance too low",
			func() {
				amount := ibctesting.DefaultCoinAmount.AddRaw(1)
				actions = []types.Action{types.NewTransferAction("uatom", amount, "")}
				funds = sdk.NewCoins(sdk.NewCoin("uatom", amount))
			},
			sdkerrors.ErrInsufficientFunds,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			path := suite.setupPath(suite.chainA, suite.chainB)

			sender = suite.chainA.NewAccount("uatom", "uosmo")
			connectionID = path.EndpointA.ConnectionID
			actions = []types.Action{types.NewTransferAction("uatom", sdkmath.NewInt(100), "")}
			funds = sdk.NewCoins(sdk.NewInt64Coin("uatom", 100))
			timeout = nil
			relayerFee = nil

			tc.malleate()

			ctx := suite.chainA.GetContext()
			sequence, err := suite.chainA.ICS999Keeper.Act(ctx, sender, connectionID, actions, funds, timeout, relayerFee)

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(suite.chainA.ICS4Wrapper.SentPackets)
				return
			}

			suite.Require().NoError(err)
			suite.Require().Equal(uint64(1), sequence)

			packet, found := suite.chainA.ICS4Wrapper.LastPacket()
			suite.Require().True(found)
			suite.Require().Equal(path.EndpointB.ChannelID, packet.DestinationChannel)

			expTimeout := uint64(ctx.BlockTime().UnixNano()) + types.DefaultTimeoutSecs*1_000_000_000
			if timeout != nil {
				expTimeout = *timeout * 1_000_000_000
			}
			suite.Require().Equal(expTimeout, packet.TimeoutTimestamp)

			data, err := types.UnmarshalPacketData(packet.GetData())
			suite.Require().NoError(err)
			suite.Require().Equal(sender.String(), data.Sender)
			suite.Require().Equal(actions, data.Actions)
			suite.Require().Equal(relayerFee, data.RelayerFee)

			// every attached coin left the sender
			for _, coin := range funds {
				suite.Require().True(
					ibctesting.DefaultCoinAmount.Sub(coin.Amount).Equal(suite.chainA.Balance(sender, coin.Denom)),
				)
			}

			// native coins are escrowed, the source relayer fee is only held
			var escrowed sdkmath.Int
			for _, action := range actions {
				if action.Transfer != nil {
					escrowed = action.Transfer.Amount
				}
			}
			if relayerFee != nil && relayerFee.Dest != nil {
				escrowed = escrowed.Add(relayerFee.Dest.Amount)
			}
			if !escrowed.IsNil() {
				suite.Require().True(escrowed.Equal(suite.chainA.ICS999Keeper.GetTotalEscrowForDenom(ctx, "uatom").Amount))
			}
			suite.Require().True(suite.chainA.ICS999Keeper.GetTotalEscrowForDenom(ctx, "uosmo").Amount.IsZero())
		})
	}
}

// TestActBurnsVouchers checks that vouchers sent back towards their source
// are burned instead of escrowed.
func (suite *KeeperTestSuite) TestActBurnsVouchers() {
	path := suite.setupPath(suite.chainA, suite.chainB)

	sender := suite.chainA.NewAccount("uatom")
	recipient := suite.chainB.NewAccount()

	amount := sdkmath.NewInt(100)
	packet := suite.act(path.EndpointA, sender, []types.Action{types.NewTransferAction("uatom", amount, recipient.String())}, sdk.NewCoins(sdk.NewCoin("uatom", amount)), nil)
	suite.Require().True(suite.relay(path, packet).Success())

	voucher := voucherDenom("uatom", path.EndpointB)
	suite.Require().True(amount.Equal(suite.chainB.Balance(recipient, voucher)))

	supply := suite.chainB.BankKeeper.GetSupply(suite.chainB.GetContext(), voucher)
	suite.Require().True(amount.Equal(supply.Amount))

	suite.act(path.EndpointB, recipient, []types.Action{types.NewTransferAction(voucher, sdkmath.NewInt(40), sender.String())}, sdk.NewCoins(sdk.NewInt64Coin(voucher, 40)), nil)

	supply = suite.chainB.BankKeeper.GetSupply(suite.chainB.GetContext(), voucher)
	suite.Require().True(sdkmath.NewInt(60).Equal(supply.Amount))
	suite.Require().True(suite.chainB.ICS999Keeper.GetTotalEscrowForDenom(suite.chainB.GetContext(), voucher).Amount.IsZero())
	suite.Require().True(suite.chainB.BankKeeper.GetBalance(suite.chainB.GetContext(), suite.chainB.ModuleAddress(), voucher).IsZero())
}

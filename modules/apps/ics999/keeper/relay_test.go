package keeper_test

import (
	"encoding/json"

	"github.com/cosmos/gogoproto/proto"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/cosmos/ics999/modules/apps/ics999/types"
	ibctesting "github.com/cosmos/ics999/testing"
	"github.com/cosmos/ics999/testing/mock"

	icatypes "github.com/cosmos/ibc-go/v10/modules/apps/27-interchain-accounts/types"
	channeltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// interchainAccount returns the address a default registration without salt
// creates for the controller on the endpoint's chain.
func interchainAccount(endpoint *ibctesting.Endpoint, controller sdk.AccAddress) sdk.AccAddress {
	salt := types.DefaultSalt(endpoint.Endpoint(), controller.String())
	return types.DeriveAccountAddress(endpoint.Chain.ModuleAddress(), types.AccountTemplateChecksum, salt)
}

// executeAction serializes the messages into an execute action.
func (suite *KeeperTestSuite) executeAction(chain *ibctesting.TestChain, msgs ...proto.Message) types.Action {
	bz, err := icatypes.SerializeCosmosTx(chain.Codec, msgs, icatypes.EncodingProto3JSON)
	suite.Require().NoError(err)
	return types.NewExecuteAction(bz)
}

func (suite *KeeperTestSuite) TestTransferRoundTrip() {
	path := suite.setupPath(suite.chainA, suite.chainB)

	sender := suite.chainA.NewAccount("uatom")
	recipient := suite.chainB.NewAccount()
	amount := sdkmath.NewInt(100)

	packet := suite.act(path.EndpointA, sender, []types.Action{types.NewTransferAction("uatom", amount, recipient.String())}, sdk.NewCoins(sdk.NewCoin("uatom", amount)), nil)
	ack := suite.relay(path, packet)

	voucher := voucherDenom("uatom", path.EndpointB)

	suite.Require().True(ack.Success())
	suite.Require().Equal([]types.ActionResult{
		{Transfer: &types.TransferResult{Denom: voucher, NewToken: true, Recipient: recipient.String()}},
	}, ack.Results)

	suite.Require().True(amount.Equal(suite.chainA.ICS999Keeper.GetTotalEscrowForDenom(suite.chainA.GetContext(), "uatom").Amount))
	suite.Require().True(amount.Equal(suite.chainB.Balance(recipient, voucher)))

	trace, err := suite.chainB.ICS999Keeper.QueryDenomTrace(suite.chainB.GetContext(), voucher)
	suite.Require().NoError(err)
	suite.Require().Equal("uatom", trace.BaseDenom)
	suite.Require().Equal([]types.Endpoint{path.EndpointB.Endpoint()}, trace.Path)

	metadata, found := suite.chainB.BankKeeper.GetDenomMetaData(suite.chainB.GetContext(), voucher)
	suite.Require().True(found)
	suite.Require().Equal(voucher, metadata.Base)

	// a second transfer reuses the voucher
	packet = suite.act(path.EndpointA, sender, []types.Action{types.NewTransferAction("uatom", amount, recipient.String())}, sdk.NewCoins(sdk.NewCoin("uatom", amount)), nil)
	ack = suite.relay(path, packet)
	suite.Require().False(ack.Results[0].Transfer.NewToken)
	suite.Require().True(amount.MulRaw(2).Equal(suite.chainB.Balance(recipient, voucher)))

	// return all vouchers to the source
	total := amount.MulRaw(2)
	packet = suite.act(path.EndpointB, recipient, []types.Action{types.NewTransferAction(voucher, total, sender.String())}, sdk.NewCoins(sdk.NewCoin(voucher, total)), nil)
	ack = suite.relay(path.Reverse(), packet)

	suite.Require().True(ack.Success())
	suite.Require().Equal([]types.ActionResult{
		{Transfer: &types.TransferResult{Denom: "uatom", NewToken: false, Recipient: sender.String()}},
	}, ack.Results)

	suite.Require().True(ibctesting.DefaultCoinAmount.Equal(suite.chainA.Balance(sender, "uatom")))
	suite.Require().True(suite.chainA.ICS999Keeper.GetTotalEscrowForDenom(suite.chainA.GetContext(), "uatom").Amount.IsZero())
	suite.Require().True(suite.chainB.BankKeeper.GetSupply(suite.chainB.GetContext(), voucher).IsZero())

	_, broken := suite.chainA.ICS999Keeper.TotalEscrowInvariant(suite.chainA.GetContext())
	suite.Require().False(broken)
}

// TestMultiHopTransfer sends a token A -> B -> C and back along the same
// route, checking that the vouchers on B are escrowed when forwarded.
func (suite *KeeperTestSuite) TestMultiHopTransfer() {
	pathAB := suite.setupPath(suite.chainA, suite.chainB)
	pathBC := suite.setupPath(suite.chainB, suite.chainC)

	sender := suite.chainA.NewAccount("uatom")
	middle := suite.chainB.NewAccount()
	recipient := suite.chainC.NewAccount()
	amount := sdkmath.NewInt(100)

	packet := suite.act(pathAB.EndpointA, sender, []types.Action{types.NewTransferAction("uatom", amount, middle.String())}, sdk.NewCoins(sdk.NewCoin("uatom", amount)), nil)
	suite.Require().True(suite.relay(pathAB, packet).Success())

	voucherB := voucherDenom("uatom", pathAB.EndpointB)
	voucherC := voucherDenom("uatom", pathAB.EndpointB, pathBC.EndpointB)
	suite.Require().NotEqual(voucherB, voucherC)

	packet = suite.act(pathBC.EndpointA, middle, []types.Action{types.NewTransferAction(voucherB, amount, recipient.String())}, sdk.NewCoins(sdk.NewCoin(voucherB, amount)), nil)
	ack := suite.relay(pathBC, packet)
	suite.Require().True(ack.Success())
	suite.Require().Equal(voucherC, ack.Results[0].Transfer.Denom)

	// B is a source for its own voucher when sending to C
	suite.Require().True(amount.Equal(suite.chainB.ICS999Keeper.GetTotalEscrowForDenom(suite.chainB.GetContext(), voucherB).Amount))
	suite.Require().True(amount.Equal(suite.chainC.Balance(recipient, voucherC)))

	trace, err := suite.chainC.ICS999Keeper.QueryDenomTrace(suite.chainC.GetContext(), voucherC)
	suite.Require().NoError(err)
	suite.Require().Equal([]types.Endpoint{pathAB.EndpointB.Endpoint(), pathBC.EndpointB.Endpoint()}, trace.Path)

	// and back: C burns, B releases the escrowed voucher
	packet = suite.act(pathBC.EndpointB, recipient, []types.Action{types.NewTransferAction(voucherC, amount, middle.String())}, sdk.NewCoins(sdk.NewCoin(voucherC, amount)), nil)
	ack = suite.relay(pathBC.Reverse(), packet)
	suite.Require().True(ack.Success())
	suite.Require().Equal(voucherB, ack.Results[0].Transfer.Denom)

	suite.Require().True(amount.Equal(suite.chainB.Balance(middle, voucherB)))
	suite.Require().True(suite.chainB.ICS999Keeper.GetTotalEscrowForDenom(suite.chainB.GetContext(), voucherB).Amount.IsZero())
	suite.Require().True(suite.chainC.BankKeeper.GetSupply(suite.chainC.GetContext(), voucherC).IsZero())
}

func (suite *KeeperTestSuite) TestRegisterExecuteQuery() {
	path := suite.setupPath(suite.chainA, suite.chainB)

	controller := suite.chainA.NewAccount("uatom")
	beneficiary := suite.chainB.NewAccount()
	ica := interchainAccount(path.EndpointB, controller)
	voucher := voucherDenom("uatom", path.EndpointB)

	send := banktypes.NewMsgSend(ica, beneficiary, sdk.NewCoins(sdk.NewInt64Coin(voucher, 40)))

	balanceReq, err := proto.Marshal(&banktypes.QueryBalanceRequest{Address: beneficiary.String(), Denom: voucher})
	suite.Require().NoError(err)

	actions := []types.Action{
		types.NewRegisterAccountAction(nil),
		types.NewTransferAction("uatom", sdkmath.NewInt(100), ""),
		suite.executeAction(suite.chainB, send),
		types.NewGRPCQueryAction("/cosmos.bank.v1beta1.Query/Balance", balanceReq),
		types.NewAccountQueryAction(),
	}

	packet := suite.act(path.EndpointA, controller, actions, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100)), nil)
	ack := suite.relay(path, packet)

	suite.Require().True(ack.Success(), ack.Error)
	suite.Require().Len(ack.Results, len(actions))

	suite.Require().Equal(ica.String(), ack.Results[0].RegisterAccount.Address)
	suite.Require().Equal(ica.String(), ack.Results[1].Transfer.Recipient)

	var msgData sdk.TxMsgData
	suite.Require().NoError(proto.Unmarshal(ack.Results[2].Execute.Data, &msgData))
	suite.Require().Len(msgData.MsgResponses, 1)

	// queries observe the effects of the preceding actions
	var balanceRes banktypes.QueryBalanceResponse
	suite.Require().NoError(proto.Unmarshal(ack.Results[3].Query.Response, &balanceRes))
	suite.Require().Equal(int64(40), balanceRes.Balance.Amount.Int64())

	var icaBalances sdk.Coins
	suite.Require().NoError(json.Unmarshal(ack.Results[4].Query.Response, &icaBalances))
	suite.Require().Equal(sdk.NewCoins(sdk.NewInt64Coin(voucher, 60)).String(), icaBalances.String())

	// state on the host chain
	addr, found, err := suite.chainB.ICS999Keeper.GetInterchainAccount(suite.chainB.GetContext(), path.EndpointB.Endpoint(), controller.String())
	suite.Require().NoError(err)
	suite.Require().True(found)
	suite.Require().Equal(ica, addr)
	suite.Require().NotNil(suite.chainB.AccountKeeper.GetAccount(suite.chainB.GetContext(), ica))
	suite.Require().True(sdkmath.NewInt(40).Equal(suite.chainB.Balance(beneficiary, voucher)))

	_, broken := suite.chainB.ICS999Keeper.HandlerInvariant(suite.chainB.GetContext())
	suite.Require().False(broken)

	// subsequent packets reuse the registered account
	packet = suite.act(path.EndpointA, controller, []types.Action{types.NewAccountQueryAction()}, nil, nil)
	ack = suite.relay(path, packet)
	suite.Require().True(ack.Success(), ack.Error)

	// and cannot register a second one
	packet = suite.act(path.EndpointA, controller, []types.Action{types.NewRegisterAccountAction([]byte("salt"))}, nil, nil)
	ack = suite.relay(path, packet)
	suite.Require().False(ack.Success())
}

func (suite *KeeperTestSuite) TestOnRecvPacketFailures() {
	var (
		path       *ibctesting.Path
		controller sdk.AccAddress
		actions    []types.Action
	)

	testCases := []struct {
		name     string
		malleate func()
	}{
		{
			"execute without an account",
			func() {
				send := banktypes.NewMsgSend(controller, controller, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)))
				actions = []types.Action{suite.executeAction(suite.chainB, send)}
			},
		},
		{
			"transfer without an account or recipient",
			func() {
				actions = []types.Action{types.NewTransferAction("uatom", sdkmath.NewInt(1), "")}
			},
		},
		{
			"execute signed by another account",
			func() {
				other := suite.chainB.NewAccount("stake")
				send := banktypes.NewMsgSend(other, controller, sdk.NewCoins(sdk.NewInt64Coin("stake", 1)))
				actions = append(actions, suite.executeAction(suite.chainB, send))
			},
		},
		{
			"execute fails after a transfer",
			func() {
				ica := interchainAccount(path.EndpointB, controller)
				send := banktypes.NewMsgSend(ica, controller, sdk.NewCoins(sdk.NewInt64Coin(voucherDenom("uatom", path.EndpointB), 1000)))
				actions = append(actions, types.NewTransferAction("uatom", sdkmath.NewInt(1), ""), suite.executeAction(suite.chainB, send))
			},
		},
		{
			"query not module query safe",
			func() {
				actions = append(actions, types.NewGRPCQueryAction("/cosmos.bank.v1beta1.Msg/Send", nil))
			},
		},
		{
			"custom factory not found",
			func() {
				actions = []types.Action{types.NewCustomFactoryAction("unknown", nil)}
			},
		},
		{
			"account address already in use",
			func() {
				ica := interchainAccount(path.EndpointB, controller)
				suite.chainB.Fund(ica, sdk.NewInt64Coin("stake", 1))
			},
		},
		{
			"receive disabled",
			func() {
				suite.Require().NoError(suite.chainB.ICS999Keeper.SetParams(suite.chainB.GetContext(), types.NewParams(true, false, types.DefaultTimeoutSecs)))
			},
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			path = suite.setupPath(suite.chainA, suite.chainB)
			controller = suite.chainA.NewAccount("uatom")
			actions = []types.Action{types.NewRegisterAccountAction(nil)}

			tc.malleate()

			funds := sdk.NewCoins()
			for _, action := range actions {
				if action.Transfer != nil {
					funds = funds.Add(action.Transfer.Coin())
				}
			}

			packet := suite.act(path.EndpointA, controller, actions, funds, nil)
			ack := suite.relay(path, packet)

			suite.Require().False(ack.Success())
			suite.Require().NotEmpty(ack.Error)
			suite.Require().Empty(ack.Results)

			// nothing the queue did before failing was committed
			ctxB := suite.chainB.GetContext()
			_, found, err := suite.chainB.ICS999Keeper.GetInterchainAccount(ctxB, path.EndpointB.Endpoint(), controller.String())
			suite.Require().NoError(err)
			suite.Require().False(found)

			traces, err := suite.chainB.ICS999Keeper.QueryDenomTraces(ctxB, nil)
			suite.Require().NoError(err)
			suite.Require().Empty(traces.DenomTraces)

			has, err := suite.chainB.ICS999Keeper.Handler.Has(ctxB)
			suite.Require().NoError(err)
			suite.Require().False(has)

			// and the sender got its funds back
			suite.Require().True(ibctesting.DefaultCoinAmount.Equal(suite.chainA.Balance(controller, "uatom")))
			suite.Require().True(suite.chainA.ICS999Keeper.GetTotalEscrowForDenom(suite.chainA.GetContext(), "uatom").Amount.IsZero())
		})
	}
}

func (suite *KeeperTestSuite) TestCustomFactoryRegistration() {
	var factory *mock.AccountFactory

	testCases := []struct {
		name     string
		malleate func()
		expPass  bool
	}{
		{
			"success",
			func() {},
			true,
		},
		{
			"failure: factory errors",
			func() {
				factory.Err = mock.ErrMockCallback
			},
			false,
		},
		{
			"failure: factory returns no data",
			func() {
				factory.Response = []byte{}
			},
			false,
		},
		{
			"failure: factory returns an invalid address",
			func() {
				factory.Response = []byte(`{"address":"invalid"}`)
			},
			false,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			path := suite.setupPath(suite.chainA, suite.chainB)
			controller := suite.chainA.NewAccount()

			factory = &mock.AccountFactory{AccountKeeper: suite.chainB.AccountKeeper}
			suite.chainB.ICS999Keeper.SetAccountFactory("mock", factory)

			tc.malleate()

			data := []byte("init")
			packet := suite.act(path.EndpointA, controller, []types.Action{types.NewCustomFactoryAction("mock", data)}, nil, nil)
			ack := suite.relay(path, packet)

			expAddr := mock.FactoryAddress(types.FactoryMsg{
				Endpoint:   path.EndpointB.Endpoint(),
				Controller: controller.String(),
				Data:       data,
			})

			addr, found, err := suite.chainB.ICS999Keeper.GetInterchainAccount(suite.chainB.GetContext(), path.EndpointB.Endpoint(), controller.String())
			suite.Require().NoError(err)

			if tc.expPass {
				suite.Require().True(ack.Success(), ack.Error)
				suite.Require().Equal(expAddr.String(), ack.Results[0].RegisterAccount.Address)
				suite.Require().True(found)
				suite.Require().Equal(expAddr, addr)
				suite.Require().NotNil(suite.chainB.AccountKeeper.GetAccount(suite.chainB.GetContext(), expAddr))
			} else {
				suite.Require().False(ack.Success())
				suite.Require().False(found)
				suite.Require().Nil(suite.chainB.AccountKeeper.GetAccount(suite.chainB.GetContext(), expAddr))
			}
		})
	}
}

func (suite *KeeperTestSuite) TestRelayerFees() {
	var (
		path    *ibctesting.Path
		sender  sdk.AccAddress
		srcFee  = sdk.NewInt64Coin("uosmo", 5)
		destFee = sdk.NewInt64Coin("uatom", 10)
		amount  = sdkmath.NewInt(100)
	)

	testCases := []struct {
		name         string
		actions      func() []types.Action
		timeout      bool
		emptyRelayer bool
		expPass      bool
	}{
		{
			"success",
			func() []types.Action {
				return []types.Action{types.NewTransferAction("uatom", amount, suite.chainB.NewAccount().String())}
			},
			false,
			false,
			true,
		},
		{
			"error acknowledgement",
			func() []types.Action {
				return []types.Action{types.NewTransferAction("uatom", amount, "")}
			},
			false,
			false,
			false,
		},
		{
			"timeout",
			func() []types.Action {
				return []types.Action{types.NewTransferAction("uatom", amount, suite.chainB.NewAccount().String())}
			},
			true,
			false,
			false,
		},
		{
			"error acknowledgement: destination relayer address is empty",
			func() []types.Action {
				return []types.Action{types.NewTransferAction("uatom", amount, suite.chainB.NewAccount().String())}
			},
			false,
			true,
			false,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			path = suite.setupPath(suite.chainA, suite.chainB)
			sender = suite.chainA.NewAccount("uatom", "uosmo")

			relayerFee := &types.RelayerFee{Src: &srcFee, Dest: &destFee}
			funds := sdk.NewCoins(sdk.NewCoin("uatom", amount).Add(destFee), srcFee)

			packet := suite.act(path.EndpointA, sender, tc.actions(), funds, relayerFee)

			relayerB := suite.chainB.RelayerAccount
			if tc.emptyRelayer {
				suite.chainB.RelayerAccount = nil
			}

			if tc.timeout {
				suite.Require().NoError(path.TimeoutPacket(packet))
			} else {
				ack := suite.relay(path, packet)
				suite.Require().Equal(tc.expPass, ack.Success())
			}

			// the source relayer is paid regardless of the outcome
			suite.Require().True(srcFee.Amount.Equal(suite.chainA.Balance(suite.chainA.RelayerAccount, srcFee.Denom)))
			suite.Require().True(ibctesting.DefaultCoinAmount.Sub(srcFee.Amount).Equal(suite.chainA.Balance(sender, srcFee.Denom)))

			voucher := voucherDenom(destFee.Denom, path.EndpointB)
			escrowed := suite.chainA.ICS999Keeper.GetTotalEscrowForDenom(suite.chainA.GetContext(), "uatom").Amount

			if tc.expPass {
				// the destination relayer is paid in vouchers
				suite.Require().True(destFee.Amount.Equal(suite.chainB.Balance(relayerB, voucher)))
				suite.Require().True(amount.Add(destFee.Amount).Equal(escrowed))
				suite.Require().True(ibctesting.DefaultCoinAmount.Sub(amount).Sub(destFee.Amount).Equal(suite.chainA.Balance(sender, "uatom")))
			} else {
				// transfers and the destination fee are refunded
				suite.Require().True(suite.chainB.Balance(relayerB, voucher).IsZero())
				suite.Require().True(suite.chainB.BankKeeper.GetSupply(suite.chainB.GetContext(), voucher).IsZero())
				suite.Require().True(escrowed.IsZero())
				suite.Require().True(ibctesting.DefaultCoinAmount.Equal(suite.chainA.Balance(sender, "uatom")))
			}

			suite.Require().True(suite.chainA.Balance(suite.chainA.ModuleAddress(), srcFee.Denom).IsZero())
		})
	}
}

// TestRefundVouchers checks that vouchers burned on send are minted back
// when the packet fails.
func (suite *KeeperTestSuite) TestRefundVouchers() {
	path := suite.setupPath(suite.chainA, suite.chainB)

	sender := suite.chainA.NewAccount("uatom")
	holder := suite.chainB.NewAccount()
	amount := sdkmath.NewInt(100)

	packet := suite.act(path.EndpointA, sender, []types.Action{types.NewTransferAction("uatom", amount, holder.String())}, sdk.NewCoins(sdk.NewCoin("uatom", amount)), nil)
	suite.Require().True(suite.relay(path, packet).Success())

	voucher := voucherDenom("uatom", path.EndpointB)

	// sending back to a blocked address fails on A
	blocked := suite.chainA.AccountKeeper.GetModuleAddress(ibctesting.GovModuleName)
	packet = suite.act(path.EndpointB, holder, []types.Action{types.NewTransferAction(voucher, amount, blocked.String())}, sdk.NewCoins(sdk.NewCoin(voucher, amount)), nil)
	suite.Require().True(suite.chainB.Balance(holder, voucher).IsZero())

	ack := suite.relay(path.Reverse(), packet)
	suite.Require().False(ack.Success())

	suite.Require().True(amount.Equal(suite.chainB.Balance(holder, voucher)))
	suite.Require().True(amount.Equal(suite.chainB.BankKeeper.GetSupply(suite.chainB.GetContext(), voucher).Amount))
	suite.Require().True(amount.Equal(suite.chainA.ICS999Keeper.GetTotalEscrowForDenom(suite.chainA.GetContext(), "uatom").Amount))

	// same on timeout
	packet = suite.act(path.EndpointB, holder, []types.Action{types.NewTransferAction(voucher, amount, sender.String())}, sdk.NewCoins(sdk.NewCoin(voucher, amount)), nil)
	suite.Require().NoError(path.Reverse().TimeoutPacket(packet))
	suite.Require().True(amount.Equal(suite.chainB.Balance(holder, voucher)))
}

func (suite *KeeperTestSuite) TestPacketCallbacks() {
	var handler *mock.CallbackHandler

	testCases := []struct {
		name       string
		recipient  func() string
		timeout    bool
		fail       bool
		expOutcome types.PacketOutcome
	}{
		{
			"success",
			func() string { return suite.chainB.NewAccount().String() },
			false,
			false,
			types.OutcomeSuccess,
		},
		{
			"failed",
			func() string { return "" },
			false,
			false,
			types.OutcomeFailed,
		},
		{
			"timeout",
			func() string { return suite.chainB.NewAccount().String() },
			true,
			false,
			types.OutcomeTimeout,
		},
		{
			"failing callback does not revert the packet",
			func() string { return "" },
			false,
			true,
			types.OutcomeFailed,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			path := suite.setupPath(suite.chainA, suite.chainB)
			sender := suite.chainA.NewAccount("uatom")

			handler = &mock.CallbackHandler{
				Fail: tc.fail,
				OnCallback: func(ctx sdk.Context, sender sdk.AccAddress, _ types.CallbackMsg) {
					// writes of a failing callback are discarded
					suite.Require().NoError(suite.chainA.BankKeeper.SendCoins(ctx, sender, suite.chainA.RelayerAccount, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1))))
				},
			}
			suite.chainA.ICS999Keeper.SetCallbackHandler(handler)

			packet := suite.act(path.EndpointA, sender, []types.Action{types.NewTransferAction("uatom", sdkmath.NewInt(100), tc.recipient())}, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100)), nil)

			if tc.timeout {
				suite.Require().NoError(path.TimeoutPacket(packet))
			} else {
				suite.relay(path, packet)
			}

			relayerBalance := suite.chainA.Balance(suite.chainA.RelayerAccount, "uatom")
			if tc.fail {
				suite.Require().Empty(handler.Calls)
				suite.Require().True(relayerBalance.IsZero())

				// the refund still happened
				suite.Require().True(ibctesting.DefaultCoinAmount.Equal(suite.chainA.Balance(sender, "uatom")))
				return
			}

			suite.Require().Len(handler.Calls, 1)
			suite.Require().Equal(sender, handler.Senders[0])
			suite.Require().True(relayerBalance.Equal(sdkmath.OneInt()))

			msg := handler.Calls[0]
			suite.Require().Equal(tc.expOutcome, msg.Outcome)
			suite.Require().Equal(packet.Sequence, msg.Sequence)
			suite.Require().Equal(path.EndpointA.Endpoint(), msg.Endpoint)

			if tc.timeout {
				suite.Require().Nil(msg.Ack)
			} else {
				suite.Require().NotNil(msg.Ack)
				suite.Require().Equal(tc.expOutcome == types.OutcomeSuccess, msg.Ack.Success())
			}
		})
	}
}

func (suite *KeeperTestSuite) TestOnAcknowledgementPacketChannelError() {
	path := suite.setupPath(suite.chainA, suite.chainB)
	sender := suite.chainA.NewAccount("uatom")

	packet := suite.act(path.EndpointA, sender, []types.Action{types.NewTransferAction("uatom", sdkmath.NewInt(100), "")}, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100)), nil)

	data, err := types.UnmarshalPacketData(packet.GetData())
	suite.Require().NoError(err)

	ack := channeltypes.NewErrorAcknowledgement(types.ErrInvalidPacketData)
	suite.Require().NoError(suite.chainA.ICS999Keeper.OnAcknowledgementPacket(suite.chainA.GetContext(), packet, data, ack, suite.chainA.RelayerAccount))

	suite.Require().True(ibctesting.DefaultCoinAmount.Equal(suite.chainA.Balance(sender, "uatom")))
}

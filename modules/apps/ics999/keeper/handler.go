package keeper

import (
	"bytes"
	"encoding/json"
	"errors"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/gogoproto/proto"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ics999/modules/apps/ics999/types"

	icatypes "github.com/cosmos/ibc-go/v10/modules/apps/27-interchain-accounts/types"
	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

// newHandler creates the handler state for an inbound packet.
func (k Keeper) newHandler(ctx sdk.Context, src, dest types.Endpoint, controller string, actions []types.Action, traces []types.Trace) (types.Handler, error) {
	hostAccount, found, err := k.GetInterchainAccount(ctx, dest, controller)
	if err != nil {
		return types.Handler{}, err
	}

	var host string
	if found {
		host = hostAccount.String()
	}

	return types.NewHandler(src, dest, controller, host, actions, traces), nil
}

// executeHandler runs the action queue to completion and returns the results
// in submission order. Every action's sub-call is dispatched with
// replyOnSuccess, so the first failure aborts the whole queue.
func (k Keeper) executeHandler(ctx sdk.Context, handler types.Handler) ([]types.ActionResult, error) {
	call, results, err := k.handleNextAction(ctx, handler)
	for err == nil && call != nil {
		var data []byte
		if data, err = k.dispatch(ctx, replyOnSuccess, call); err != nil {
			break
		}

		call, results, err = k.afterAction(ctx, data)
	}
	if err != nil {
		return nil, err
	}

	return results, nil
}

// handleNextAction pops the next action and turns it into a sub-call. The
// handler is persisted before the sub-call is returned. Once the queue is
// exhausted the handler is removed and the results are returned instead.
func (k Keeper) handleNextAction(ctx sdk.Context, handler types.Handler) (subCall, []types.ActionResult, error) {
	action, ok := handler.PopAction()
	if !ok {
		if err := k.Handler.Remove(ctx); err != nil {
			return nil, nil, err
		}
		return nil, handler.Results, nil
	}

	var (
		call subCall
		err  error
	)

	switch action.Type() {
	case types.ActionTypeTransfer:
		call, err = k.handleTransfer(ctx, &handler, *action.Transfer)
	case types.ActionTypeRegisterAccount:
		call, err = k.handleRegisterAccount(ctx, &handler, *action.RegisterAccount)
	case types.ActionTypeExecute:
		call, err = k.handleExecute(ctx, &handler, *action.Execute)
	case types.ActionTypeQuery:
		// queries have no side effects to wait for
		result, err := k.handleQuery(ctx, handler, *action.Query)
		if err != nil {
			return nil, nil, err
		}
		handler.AddResult(result)
		return k.handleNextAction(ctx, handler)
	default:
		err = errorsmod.Wrap(types.ErrInvalidAction, "exactly one action variant must be set")
	}
	if err != nil {
		return nil, nil, err
	}

	if err := k.Handler.Set(ctx, handler); err != nil {
		return nil, nil, err
	}

	return call, nil, nil
}

// afterAction resumes the handler once the sub-call of the current action
// returned, parsing its response according to the action kind.
func (k Keeper) afterAction(ctx sdk.Context, data []byte) (subCall, []types.ActionResult, error) {
	handler, err := k.Handler.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, nil, types.ErrHandlerNotFound
		}
		return nil, nil, err
	}

	if handler.CurrentAction == nil {
		return nil, nil, errorsmod.Wrap(types.ErrHandlerNotFound, "no action in progress")
	}

	switch action := handler.CurrentAction; action.Type() {
	case types.ActionTypeRegisterAccount:
		if action.RegisterAccount.CustomFactory == nil {
			break
		}

		addr, err := types.ParseFactoryResponse(data)
		if err != nil {
			return nil, nil, err
		}

		if err := k.setInterchainAccount(ctx, handler.LocalEndpoint, handler.Controller, addr); err != nil {
			return nil, nil, err
		}

		handler.HostAccount = addr.String()
		handler.AddResult(types.ActionResult{
			RegisterAccount: &types.RegisterAccountResult{Address: addr.String()},
		})
	case types.ActionTypeExecute:
		var msgData sdk.TxMsgData
		if err := proto.Unmarshal(data, &msgData); err != nil {
			return nil, nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "cannot unmarshal execute response: %s", err)
		}

		handler.AddResult(types.ActionResult{
			Execute: &types.ExecuteResult{Data: data},
		})
	}

	return k.handleNextAction(ctx, handler)
}

// handleTransfer credits the recipient with the transferred amount, minting a
// voucher if the sender was the source of the token and releasing escrowed
// funds otherwise.
func (k Keeper) handleTransfer(ctx sdk.Context, handler *types.Handler, action types.TransferAction) (subCall, error) {
	trace, ok := handler.TraceOf(action.Denom)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrTraceNotFound, "denom %s", action.Denom)
	}

	recipient, err := k.resolveRecipient(*handler, action.Recipient)
	if err != nil {
		return nil, err
	}

	if trace.SenderIsSource(handler.CounterpartyEndpoint) {
		voucher := trace.AddHop(handler.LocalEndpoint)
		coin := sdk.NewCoin(voucher.IBCDenom(), action.Amount)

		newToken, err := k.registerVoucher(ctx, voucher)
		if err != nil {
			return nil, err
		}

		handler.AddResult(types.ActionResult{
			Transfer: &types.TransferResult{Denom: coin.Denom, NewToken: newToken, Recipient: recipient.String()},
		})

		return func(ctx sdk.Context) ([]byte, error) {
			return nil, k.mint(ctx, coin, recipient)
		}, nil
	}

	coin := sdk.NewCoin(trace.PopHop().IBCDenom(), action.Amount)

	handler.AddResult(types.ActionResult{
		Transfer: &types.TransferResult{Denom: coin.Denom, NewToken: false, Recipient: recipient.String()},
	})

	return func(ctx sdk.Context) ([]byte, error) {
		return nil, k.release(ctx, coin, recipient)
	}, nil
}

func (Keeper) resolveRecipient(handler types.Handler, recipient string) (sdk.AccAddress, error) {
	if recipient == "" {
		recipient = handler.HostAccount
	}
	if recipient == "" {
		return nil, errorsmod.Wrapf(types.ErrAccountNotFound, "controller %s has no interchain account and no recipient was given", handler.Controller)
	}

	addr, err := sdk.AccAddressFromBech32(recipient)
	if err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "failed to decode recipient address %s: %s", recipient, err)
	}

	return addr, nil
}

// handleRegisterAccount registers the controller's interchain account, either
// at a derived address or through the requested factory.
func (k Keeper) handleRegisterAccount(ctx sdk.Context, handler *types.Handler, action types.RegisterAccountAction) (subCall, error) {
	if handler.HostAccount != "" {
		return nil, errorsmod.Wrapf(types.ErrAccountExists, "endpoint %s, controller %s", handler.LocalEndpoint, handler.Controller)
	}

	if action.CustomFactory != nil {
		factory, ok := k.factories[action.CustomFactory.Factory]
		if !ok {
			return nil, errorsmod.Wrapf(types.ErrFactoryNotFound, "factory %s", action.CustomFactory.Factory)
		}

		msg := types.FactoryMsg{
			Endpoint:   handler.LocalEndpoint,
			Controller: handler.Controller,
			Data:       action.CustomFactory.Data,
		}

		return func(ctx sdk.Context) ([]byte, error) {
			return factory.CreateAccount(ctx, msg)
		}, nil
	}

	salt := action.Default.Salt
	if len(salt) == 0 {
		salt = types.DefaultSalt(handler.LocalEndpoint, handler.Controller)
	}

	addr := types.DeriveAccountAddress(k.GetModuleAddress(), types.AccountTemplateChecksum, salt)
	if err := k.setInterchainAccount(ctx, handler.LocalEndpoint, handler.Controller, addr); err != nil {
		return nil, err
	}

	handler.HostAccount = addr.String()
	handler.AddResult(types.ActionResult{
		RegisterAccount: &types.RegisterAccountResult{Address: addr.String()},
	})

	return func(ctx sdk.Context) ([]byte, error) {
		return k.instantiateAccount(ctx, addr)
	}, nil
}

// handleExecute runs the messages of a CosmosTx on behalf of the interchain
// account. Every message must be signed by the interchain account only.
func (k Keeper) handleExecute(ctx sdk.Context, handler *types.Handler, action types.ExecuteAction) (subCall, error) {
	if handler.HostAccount == "" {
		return nil, errorsmod.Wrapf(types.ErrAccountNotFound, "controller %s has no interchain account", handler.Controller)
	}

	hostAccount, err := sdk.AccAddressFromBech32(handler.HostAccount)
	if err != nil {
		return nil, err
	}

	msgs, err := icatypes.DeserializeCosmosTx(k.cdc, action.Msg, icatypes.EncodingProto3JSON)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidAction, err.Error())
	}

	if err := k.authenticateTx(msgs, hostAccount); err != nil {
		return nil, err
	}

	return func(ctx sdk.Context) ([]byte, error) {
		return k.executeTx(ctx, msgs)
	}, nil
}

// authenticateTx ensures the interchain account is the only signer of the
// provided messages.
func (k Keeper) authenticateTx(msgs []sdk.Msg, hostAccount sdk.AccAddress) error {
	for _, msg := range msgs {
		signers, _, err := k.cdc.GetMsgV1Signers(msg)
		if err != nil {
			return errorsmod.Wrapf(err, "failed to obtain message signers for %s", sdk.MsgTypeURL(msg))
		}

		for _, signer := range signers {
			if !bytes.Equal(signer, hostAccount) {
				return errorsmod.Wrapf(ibcerrors.ErrUnauthorized, "unexpected signer address: expected %s, got %s", hostAccount, sdk.AccAddress(signer))
			}
		}
	}

	return nil
}

// executeTx routes every message to its handler and returns the proto
// encoded sdk.TxMsgData of their responses.
func (k Keeper) executeTx(ctx sdk.Context, msgs []sdk.Msg) ([]byte, error) {
	responses := make([]*codectypes.Any, 0, len(msgs))
	for _, msg := range msgs {
		if m, ok := msg.(sdk.HasValidateBasic); ok {
			if err := m.ValidateBasic(); err != nil {
				return nil, err
			}
		}

		handler := k.msgRouter.Handler(msg)
		if handler == nil {
			return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidRequest, "no message handler found for %s", sdk.MsgTypeURL(msg))
		}

		res, err := handler(ctx, msg)
		if err != nil {
			return nil, err
		}

		// NOTE: The sdk msg handler creates a new EventManager, so events must be correctly propagated back to the current context
		ctx.EventManager().EmitEvents(res.GetEvents())

		responses = append(responses, res.MsgResponses...)
	}

	return proto.Marshal(&sdk.TxMsgData{MsgResponses: responses})
}

// handleQuery runs a read only query and returns its result.
func (k Keeper) handleQuery(ctx sdk.Context, handler types.Handler, action types.QueryAction) (types.ActionResult, error) {
	if action.Account != nil {
		if handler.HostAccount == "" {
			return types.ActionResult{}, errorsmod.Wrapf(types.ErrAccountNotFound, "controller %s has no interchain account", handler.Controller)
		}

		hostAccount, err := sdk.AccAddressFromBech32(handler.HostAccount)
		if err != nil {
			return types.ActionResult{}, err
		}

		bz, err := json.Marshal(k.bankKeeper.GetAllBalances(ctx, hostAccount))
		if err != nil {
			return types.ActionResult{}, err
		}

		return types.ActionResult{Query: &types.QueryResult{Response: bz}}, nil
	}

	if err := types.QueryPathAllowed(action.GRPC.Path); err != nil {
		return types.ActionResult{}, err
	}

	route := k.queryRouter.Route(action.GRPC.Path)
	if route == nil {
		return types.ActionResult{}, errorsmod.Wrapf(types.ErrQueryNotAllowed, "no route found for query path %s", action.GRPC.Path)
	}

	res, err := route(ctx, &abci.RequestQuery{
		Path: action.GRPC.Path,
		Data: action.GRPC.Data,
	})
	if err != nil {
		return types.ActionResult{}, err
	}

	return types.ActionResult{Query: &types.QueryResult{Response: res.Value}}, nil
}

package types

import (
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ibcerrors "github.com/cosmos/ibc-go/v10/modules/core/errors"
)

const ackErrorString = "error handling packet: see events for details"

// Action types
const (
	ActionTypeTransfer        = "transfer"
	ActionTypeRegisterAccount = "register_account"
	ActionTypeExecute         = "execute"
	ActionTypeQuery           = "query"
)

// PacketData is the payload of an ICS-999 packet.
type PacketData struct {
	// Sender is the controller of the interchain account on the host chain
	Sender     string      `json:"sender"`
	Actions    []Action    `json:"actions"`
	Traces     []Trace     `json:"traces"`
	RelayerFee *RelayerFee `json:"relayer_fee,omitempty"`
}

// NewPacketData creates a new PacketData instance
func NewPacketData(sender string, actions []Action, traces []Trace, relayerFee *RelayerFee) PacketData {
	return PacketData{
		Sender:     sender,
		Actions:    actions,
		Traces:     traces,
		RelayerFee: relayerFee,
	}
}

// ValidateBasic performs a basic check of the packet fields.
func (pd PacketData) ValidateBasic() error {
	if strings.TrimSpace(pd.Sender) == "" {
		return errorsmod.Wrap(ibcerrors.ErrInvalidAddress, "sender address cannot be blank")
	}
	if len(pd.Actions) == 0 {
		return ErrEmptyActionQueue
	}
	for i, action := range pd.Actions {
		if err := action.ValidateBasic(); err != nil {
			return errorsmod.Wrapf(err, "action %d", i)
		}
	}
	for _, trace := range pd.Traces {
		if err := trace.Validate(); err != nil {
			return err
		}
	}
	if pd.RelayerFee != nil {
		if err := pd.RelayerFee.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetBytes returns the JSON encoding of the packet data.
func (pd PacketData) GetBytes() []byte {
	bz, err := json.Marshal(pd)
	if err != nil {
		panic(err)
	}
	return bz
}

// UnmarshalPacketData decodes and validates the packet data.
func UnmarshalPacketData(bz []byte) (PacketData, error) {
	var data PacketData
	if err := json.Unmarshal(bz, &data); err != nil {
		return PacketData{}, errorsmod.Wrapf(ErrInvalidPacketData, "cannot unmarshal ICS-999 packet data: %s", err)
	}
	if err := data.ValidateBasic(); err != nil {
		return PacketData{}, errorsmod.Wrap(ErrInvalidPacketData, err.Error())
	}
	return data, nil
}

// RelayerFee splits the fee paid by the sender between the relayer delivering
// the packet to the destination chain and the relayer delivering the
// acknowledgement or timeout back to the source chain.
type RelayerFee struct {
	Dest *sdk.Coin `json:"dest,omitempty"`
	Src  *sdk.Coin `json:"src,omitempty"`
}

// Validate checks that the fee coins are valid.
func (rf RelayerFee) Validate() error {
	for _, fee := range []*sdk.Coin{rf.Dest, rf.Src} {
		if fee == nil {
			continue
		}
		if err := fee.Validate(); err != nil {
			return errorsmod.Wrap(ibcerrors.ErrInvalidCoins, err.Error())
		}
	}
	return nil
}

// Action is one unit of work in a packet. Exactly one field is set.
type Action struct {
	Transfer        *TransferAction        `json:"transfer,omitempty"`
	RegisterAccount *RegisterAccountAction `json:"register_account,omitempty"`
	Execute         *ExecuteAction         `json:"execute,omitempty"`
	Query           *QueryAction           `json:"query,omitempty"`
}

// Type returns the name of the action variant, or an empty string if none or
// several variants are set.
func (a Action) Type() string {
	var kinds []string
	if a.Transfer != nil {
		kinds = append(kinds, ActionTypeTransfer)
	}
	if a.RegisterAccount != nil {
		kinds = append(kinds, ActionTypeRegisterAccount)
	}
	if a.Execute != nil {
		kinds = append(kinds, ActionTypeExecute)
	}
	if a.Query != nil {
		kinds = append(kinds, ActionTypeQuery)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// ValidateBasic performs a stateless validation of the action.
func (a Action) ValidateBasic() error {
	switch a.Type() {
	case ActionTypeTransfer:
		return a.Transfer.ValidateBasic()
	case ActionTypeRegisterAccount:
		return a.RegisterAccount.ValidateBasic()
	case ActionTypeExecute:
		if len(a.Execute.Msg) == 0 {
			return errorsmod.Wrap(ErrInvalidAction, "execute message cannot be empty")
		}
		return nil
	case ActionTypeQuery:
		return a.Query.ValidateBasic()
	default:
		return errorsmod.Wrap(ErrInvalidAction, "exactly one action variant must be set")
	}
}

// TransferAction moves tokens to the recipient on the host chain. The
// recipient defaults to the controller's interchain account.
type TransferAction struct {
	Denom     string      `json:"denom"`
	Amount    sdkmath.Int `json:"amount"`
	Recipient string      `json:"recipient,omitempty"`
}

// NewTransferAction returns a transfer action
func NewTransferAction(denom string, amount sdkmath.Int, recipient string) Action {
	return Action{Transfer: &TransferAction{
		Denom:     denom,
		Amount:    amount,
		Recipient: recipient,
	}}
}

// Coin returns the transferred amount as a coin.
func (ta TransferAction) Coin() sdk.Coin {
	return sdk.Coin{Denom: ta.Denom, Amount: ta.Amount}
}

// ValidateBasic checks the transferred amount.
func (ta TransferAction) ValidateBasic() error {
	if err := sdk.ValidateDenom(ta.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidAction, err.Error())
	}
	if ta.Amount.IsNil() || !ta.Amount.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidAction, "transfer amount must be positive: %s", ta.Amount)
	}
	return nil
}

// RegisterAccountAction creates an interchain account for the controller,
// either at a deterministic address or through a registered account factory.
type RegisterAccountAction struct {
	Default       *DefaultRegistration       `json:"default,omitempty"`
	CustomFactory *CustomFactoryRegistration `json:"custom_factory,omitempty"`
}

// DefaultRegistration derives the account address from the salt. An empty salt
// is replaced by a hash of the endpoint and the controller.
type DefaultRegistration struct {
	Salt []byte `json:"salt,omitempty"`
}

// CustomFactoryRegistration delegates account creation to the named factory.
type CustomFactoryRegistration struct {
	Factory string `json:"factory"`
	Data    []byte `json:"data,omitempty"`
}

// NewRegisterAccountAction returns a default registration action
func NewRegisterAccountAction(salt []byte) Action {
	return Action{RegisterAccount: &RegisterAccountAction{
		Default: &DefaultRegistration{Salt: salt},
	}}
}

// NewCustomFactoryAction returns a registration action delegated to a factory
func NewCustomFactoryAction(factory string, data []byte) Action {
	return Action{RegisterAccount: &RegisterAccountAction{
		CustomFactory: &CustomFactoryRegistration{Factory: factory, Data: data},
	}}
}

// ValidateBasic checks that exactly one registration flow is selected.
func (ra RegisterAccountAction) ValidateBasic() error {
	if (ra.Default == nil) == (ra.CustomFactory == nil) {
		return errorsmod.Wrap(ErrInvalidAction, "exactly one of default or custom_factory must be set")
	}
	if ra.Default != nil && len(ra.Default.Salt) > MaxSaltSize {
		return errorsmod.Wrapf(ErrInvalidAction, "salt length %d exceeds maximum %d", len(ra.Default.Salt), MaxSaltSize)
	}
	if ra.CustomFactory != nil && strings.TrimSpace(ra.CustomFactory.Factory) == "" {
		return errorsmod.Wrap(ErrInvalidAction, "factory name cannot be blank")
	}
	return nil
}

// ExecuteAction runs messages signed by the interchain account. Msg holds a
// CosmosTx encoded as proto3 JSON.
type ExecuteAction struct {
	Msg []byte `json:"msg"`
}

// NewExecuteAction returns an execute action
func NewExecuteAction(msg []byte) Action {
	return Action{Execute: &ExecuteAction{Msg: msg}}
}

// QueryAction performs a read only query on the host chain.
type QueryAction struct {
	// GRPC runs a module safe gRPC query
	GRPC *GRPCQuery `json:"grpc,omitempty"`
	// Account returns the balances of the controller's interchain account
	Account *AccountQuery `json:"account,omitempty"`
}

// GRPCQuery is a gRPC query path and its proto encoded request.
type GRPCQuery struct {
	Path string `json:"path"`
	Data []byte `json:"data,omitempty"`
}

// AccountQuery queries the interchain account of the controller.
type AccountQuery struct{}

// NewGRPCQueryAction returns a gRPC query action
func NewGRPCQueryAction(path string, data []byte) Action {
	return Action{Query: &QueryAction{GRPC: &GRPCQuery{Path: path, Data: data}}}
}

// NewAccountQueryAction returns an interchain account query action
func NewAccountQueryAction() Action {
	return Action{Query: &QueryAction{Account: &AccountQuery{}}}
}

// ValidateBasic checks that exactly one query is selected.
func (qa QueryAction) ValidateBasic() error {
	if (qa.GRPC == nil) == (qa.Account == nil) {
		return errorsmod.Wrap(ErrInvalidAction, "exactly one of grpc or account must be set")
	}
	if qa.GRPC != nil && strings.TrimSpace(qa.GRPC.Path) == "" {
		return errorsmod.Wrap(ErrInvalidAction, "query path cannot be blank")
	}
	return nil
}

// ActionResult is the outcome of one action. It mirrors Action.
type ActionResult struct {
	Transfer        *TransferResult        `json:"transfer,omitempty"`
	RegisterAccount *RegisterAccountResult `json:"register_account,omitempty"`
	Execute         *ExecuteResult         `json:"execute,omitempty"`
	Query           *QueryResult           `json:"query,omitempty"`
}

// TransferResult reports the denom credited on the host chain.
type TransferResult struct {
	Denom     string `json:"denom"`
	NewToken  bool   `json:"new_token"`
	Recipient string `json:"recipient"`
}

// RegisterAccountResult reports the address of the new interchain account.
type RegisterAccountResult struct {
	Address string `json:"address"`
}

// ExecuteResult carries the proto encoded sdk.TxMsgData of the executed messages.
type ExecuteResult struct {
	Data []byte `json:"data,omitempty"`
}

// QueryResult carries the raw query response.
type QueryResult struct {
	Response []byte `json:"response"`
}

// PacketAck is the ICS-999 acknowledgement. Results is set on success and
// Error on failure.
type PacketAck struct {
	Results []ActionResult `json:"results,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// NewResultsAck returns a successful acknowledgement
func NewResultsAck(results []ActionResult) PacketAck {
	if results == nil {
		results = []ActionResult{}
	}
	return PacketAck{Results: results}
}

// NewErrorAck returns a failed acknowledgement. Only the ABCI code and
// codespace of the error are included, since the full error text is not
// guaranteed to be deterministic.
func NewErrorAck(err error) PacketAck {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	return PacketAck{Error: fmt.Sprintf("codespace: %s, code: %d: %s", codespace, code, ackErrorString)}
}

// Success returns true if the packet was handled successfully. An ack
// carrying neither results nor an error is not a success.
func (pa PacketAck) Success() bool {
	return pa.Error == "" && pa.Results != nil
}

// ValidateBasic checks that exactly one of results and error is set.
func (pa PacketAck) ValidateBasic() error {
	if (pa.Results == nil) == (pa.Error == "") {
		return errorsmod.Wrap(ErrInvalidAcknowledgement, "acknowledgement must carry either results or an error")
	}
	return nil
}

// GetBytes returns the JSON encoding of the acknowledgement.
func (pa PacketAck) GetBytes() []byte {
	bz, err := json.Marshal(pa)
	if err != nil {
		panic(err)
	}
	return bz
}

// MarshalJSON always encodes the results field of a successful ack, even if
// no results were produced.
func (pa PacketAck) MarshalJSON() ([]byte, error) {
	if pa.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{pa.Error})
	}
	results := pa.Results
	if results == nil {
		results = []ActionResult{}
	}
	return json.Marshal(struct {
		Results []ActionResult `json:"results"`
	}{results})
}

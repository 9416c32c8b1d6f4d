package types

// ICS-999 events
const (
	EventTypeSendPacket      = "ics999_send_packet"
	EventTypeRecvPacket      = "ics999_recv_packet"
	EventTypeAckPacket       = "ics999_acknowledge_packet"
	EventTypeTimeoutPacket   = "ics999_timeout_packet"
	EventTypeChannelOpen     = "ics999_channel_open"
	EventTypeEscrow          = "ics999_escrow"
	EventTypeRelease         = "ics999_release"
	EventTypeMint            = "ics999_mint"
	EventTypeBurn            = "ics999_burn"
	EventTypeRegisterAccount = "ics999_register_account"
	EventTypeDenomTrace      = "ics999_denom_trace"
	EventTypeCallbackFailed  = "ics999_callback_failed"

	AttributeKeySender       = "sender"
	AttributeKeyConnectionID = "connection_id"
	AttributeKeyPortID       = "port_id"
	AttributeKeyChannelID    = "channel_id"
	AttributeKeySequence     = "sequence"
	AttributeKeyActions      = "actions"
	AttributeKeyDenom        = "denom"
	AttributeKeyBaseDenom    = "base_denom"
	AttributeKeyAmount       = "amount"
	AttributeKeyAccount      = "account"
	AttributeKeyController   = "controller"
	AttributeKeyAddress      = "address"
	AttributeKeyOutcome      = "outcome"
	AttributeKeyAckSuccess   = "success"
	AttributeKeyAckError     = "error"
	AttributeKeyTraceHash    = "trace_hash"
)

package types

import (
	"crypto/sha256"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// MaxSaltSize is the maximum length of a registration salt.
const MaxSaltSize = 64

// AccountTemplateChecksum identifies the account type instantiated by the
// default registration flow. It is part of the address derivation so that a
// change of template cannot collide with existing accounts.
var AccountTemplateChecksum = sha256Sum([]byte("ics999/base-account"))

// DefaultSalt returns the salt used when a registration does not provide one.
// It is unique per (endpoint, controller) pair: the port and channel
// identifiers are length prefixed and the controller takes the remainder.
func DefaultSalt(endpoint Endpoint, controller string) []byte {
	preImage := make([]byte, 0, len(endpoint.PortID)+len(endpoint.ChannelID)+len(controller)+2)
	preImage = append(preImage, address.MustLengthPrefix([]byte(endpoint.PortID))...)
	preImage = append(preImage, address.MustLengthPrefix([]byte(endpoint.ChannelID))...)
	preImage = append(preImage, controller...)
	return sha256Sum(preImage)
}

// DeriveAccountAddress computes the interchain account address as a pure
// function of the deployer, the account template checksum and the salt.
// Every input is length prefixed, mirroring the predictable contract address
// scheme of wasmd.
func DeriveAccountAddress(deployer sdk.AccAddress, checksum, salt []byte) sdk.AccAddress {
	key := make([]byte, 0, len(checksum)+len(deployer)+len(salt)+3)
	key = append(key, address.MustLengthPrefix(checksum)...)
	key = append(key, address.MustLengthPrefix(deployer)...)
	key = append(key, address.MustLengthPrefix(salt)...)
	return address.Module(ModuleName, key)
}

func sha256Sum(bz []byte) []byte {
	hash := sha256.Sum256(bz)
	return hash[:]
}

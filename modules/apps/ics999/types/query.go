package types

import (
	"strings"

	gogoproto "github.com/cosmos/gogoproto/proto"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	queryv1 "cosmossdk.io/api/cosmos/query/v1"
	errorsmod "cosmossdk.io/errors"
)

// QueryPathAllowed reports whether the gRPC method at path carries the
// `(cosmos.query.v1.module_query_safe) = true` annotation. Only such queries
// are deterministic and gas bounded, so only they may be run on behalf of a
// remote controller.
func QueryPathAllowed(path string) error {
	if !strings.HasPrefix(path, "/") {
		return errorsmod.Wrapf(ErrQueryNotAllowed, "invalid gRPC service path: %s", path)
	}

	// /cosmos.bank.v1beta1.Query/Balance becomes cosmos.bank.v1beta1.Query.Balance
	fullName := protoreflect.FullName(strings.ReplaceAll(path[1:], "/", "."))
	if !fullName.IsValid() {
		return errorsmod.Wrapf(ErrQueryNotAllowed, "invalid method path: %s", path)
	}

	files, err := gogoproto.MergedRegistry()
	if err != nil {
		return errorsmod.Wrap(ErrQueryNotAllowed, err.Error())
	}
	if files == nil {
		files = protoregistry.GlobalFiles
	}

	desc, err := files.FindDescriptorByName(fullName)
	if err != nil {
		return errorsmod.Wrapf(ErrQueryNotAllowed, "unknown query path %s", path)
	}

	method, ok := desc.(protoreflect.MethodDescriptor)
	if !ok {
		return errorsmod.Wrapf(ErrQueryNotAllowed, "%s is not a method", path)
	}

	if safe, ok := proto.GetExtension(method.Options(), queryv1.E_ModuleQuerySafe).(bool); !ok || !safe {
		return errorsmod.Wrapf(ErrQueryNotAllowed, "%s is not module query safe", path)
	}

	return nil
}

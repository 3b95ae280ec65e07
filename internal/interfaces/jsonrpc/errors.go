package jsonrpcinterface

import "github.com/btcbank/bankd/internal/core/application"

// Wire error codes per fault kind. Stable: clients key on these and on the
// kind string, never on messages.
var faultCodes = map[application.FaultKind]int{
	application.FaultUnauthorized:           -32001,
	application.FaultAccountNotFound:        -32002,
	application.FaultLabelAlreadyBound:      -32003,
	application.FaultLabelConflict:          -32004,
	application.FaultSourceAccountNotFound:  -32005,
	application.FaultDestinationAmbiguous:   -32006,
	application.FaultMalformedAccountName:   -32007,
	application.FaultInvalidAddressingToken: -32008,
	application.FaultDaemonUnavailable:      -32010,
	application.FaultDaemonRejected:         -32011,
	application.FaultInvalidRequest:         -32600,
	application.FaultInternal:               -32603,
}

const methodNotFoundCode = -32601

type errorObject struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newErrorObject(fault *application.Fault) *errorObject {
	code, ok := faultCodes[fault.Kind]
	if !ok {
		code = faultCodes[application.FaultInternal]
	}
	return &errorObject{
		Code:    code,
		Kind:    string(fault.Kind),
		Message: fault.Message,
	}
}

package jsonrpcinterface

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/btcbank/bankd/internal/core/application"
)

// params decodes the positional argument list of a request. Optional
// trailing arguments may be absent or JSON null; both mean "not provided".
type params []json.RawMessage

func invalidParam(i int, err error) error {
	return application.NewFault(
		application.FaultInvalidRequest,
		fmt.Sprintf("invalid parameter #%d: %v", i+1, err),
	)
}

func missingParam(i int) error {
	return application.NewFault(
		application.FaultInvalidRequest,
		fmt.Sprintf("missing required parameter #%d", i+1),
	)
}

func (p params) isNull(i int) bool {
	return i >= len(p) || bytes.Equal(bytes.TrimSpace(p[i]), []byte("null"))
}

func (p params) stringAt(i int) (string, error) {
	if p.isNull(i) {
		return "", missingParam(i)
	}
	var s string
	if err := json.Unmarshal(p[i], &s); err != nil {
		return "", invalidParam(i, err)
	}
	return s, nil
}

func (p params) optStringAt(i int) (*string, error) {
	if p.isNull(i) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(p[i], &s); err != nil {
		return nil, invalidParam(i, err)
	}
	return &s, nil
}

func (p params) stringOr(i int, def string) (string, error) {
	s, err := p.optStringAt(i)
	if err != nil {
		return "", err
	}
	if s == nil {
		return def, nil
	}
	return *s, nil
}

func (p params) intOr(i int, def int) (int, error) {
	if p.isNull(i) {
		return def, nil
	}
	var n int
	if err := json.Unmarshal(p[i], &n); err != nil {
		return 0, invalidParam(i, err)
	}
	return n, nil
}

func (p params) boolOr(i int, def bool) (bool, error) {
	if p.isNull(i) {
		return def, nil
	}
	var b bool
	if err := json.Unmarshal(p[i], &b); err != nil {
		return false, invalidParam(i, err)
	}
	return b, nil
}

// amountAt accepts a JSON number or a numeric string, decoded exactly: the
// raw token goes straight into the decimal parser, floats never intervene.
func (p params) amountAt(i int) (decimal.Decimal, error) {
	if p.isNull(i) {
		return decimal.Zero, missingParam(i)
	}

	raw := bytes.TrimSpace(p[i])
	if len(raw) > 1 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, invalidParam(i, err)
		}
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, invalidParam(i, err)
		}
		return amount, nil
	}

	amount, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, invalidParam(i, err)
	}
	return amount, nil
}

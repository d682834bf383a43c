package strategy

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dicemate/dicemate/internal/domain"
)

// validate is shared across strategy constructors. validator/v10 instances
// cache struct metadata, so one per package.
var validate = validator.New()

// Params is the opaque string-keyed parameter map handed from configuration
// layers into a strategy constructor. The engine never validates its
// contents; each strategy decodes and validates what it needs.
type Params map[string]string

// String returns the named parameter or def when absent.
func (p Params) String(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Decimal parses the named parameter as an arbitrary-precision decimal.
func (p Params) Decimal(key, def string) (decimal.Decimal, error) {
	raw := p.String(key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidParams, key, raw, err)
	}
	return d, nil
}

// Int parses the named parameter as a base-10 integer.
func (p Params) Int(key string, def int64) (int64, error) {
	raw, ok := p[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidParams, key, raw, err)
	}
	return n, nil
}

// Bool parses the named parameter as a boolean.
func (p Params) Bool(key string, def bool) (bool, error) {
	raw, ok := p[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidParams, key, raw, err)
	}
	return b, nil
}

// checkConfig runs struct-tag validation on a decoded strategy config and
// normalizes the failure into the shared invalid-params error.
func checkConfig(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}
	return nil
}

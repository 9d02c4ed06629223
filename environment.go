package relay

import (
	"fmt"
	"strings"
)

// An Enumerable is a type with a closed set of valid values.
type Enumerable interface {
	fmt.Stringer
	Valid() error
}

var _ Enumerable = Environment("")

// An Environment is a different context in which a relay app operates.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Staging, Testing:
		return nil
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrNotValid, string(e))
	}
}

// UnmarshalText parses text case-insensitively into a valid Environment.
//
// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Environment) UnmarshalText(text []byte) error {
	env := Environment(strings.ToUpper(strings.TrimSpace(string(text))))
	if err := env.Valid(); err != nil {
		return err
	}

	*e = env
	return nil
}

func (e Environment) IsDevelopment() bool {
	return e == Development
}

func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) IsStaging() bool {
	return e == Staging
}

func (e Environment) IsTesting() bool {
	return e == Testing
}

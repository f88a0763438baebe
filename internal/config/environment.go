package config

// Environment represents where the job is running.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

func (e Environment) IsProduction() bool {
	return e == Production
}

// Decode lets envconfig read PROMOWATCH_ENV through ParseEnvironment.
func (e *Environment) Decode(v string) error {
	*e = ParseEnvironment(v)
	return nil
}

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}

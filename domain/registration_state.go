package domain

// RegistrationState is the lifecycle position of one instance registration.
type RegistrationState int32

const (
	StateUnregistered RegistrationState = iota
	StateRegistering
	StateRegistered
	StateDeregistering
	StateDeregistered
)

func (s RegistrationState) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateRegistering:
		return "registering"
	case StateRegistered:
		return "registered"
	case StateDeregistering:
		return "deregistering"
	case StateDeregistered:
		return "deregistered"
	default:
		return "unknown"
	}
}

// Serving reports whether an instance in this state should still answer its liveness probe with success.
func (s RegistrationState) Serving() bool {
	return s == StateUnregistered || s == StateRegistering || s == StateRegistered
}

package adapter

import (
	"errors"
	"fmt"
)

// ErrContractViolation is wrapped by every ContractViolation.
var ErrContractViolation = errors.New("libretro contract violation")

// ContractViolation is the panic value raised when the frontend or the core
// breaks the calling protocol. Continuing after one would corrupt frontend
// memory or desynchronize audio and video, so it is never returned as an
// ordinary error.
type ContractViolation struct {
	Msg string
}

func (e *ContractViolation) Error() string {
	return "contract violation: " + e.Msg
}

func (e *ContractViolation) Unwrap() error {
	return ErrContractViolation
}

// violate logs and panics with a ContractViolation.
func violate(format string, args ...any) {
	v := &ContractViolation{Msg: fmt.Sprintf(format, args...)}
	Logger().Error(v.Msg)
	panic(v)
}

// IsContractViolation reports whether a recovered panic value is a
// ContractViolation.
func IsContractViolation(r any) bool {
	err, ok := r.(error)
	return ok && errors.Is(err, ErrContractViolation)
}

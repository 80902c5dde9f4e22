package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party Delivery Errors
var (
	ErrMailDeliveryFailed = errors.New("mail delivery failed")
	ErrSMSDeliveryFailed  = errors.New("sms delivery failed")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

func NewMailDeliveryError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMailDeliveryFailed,
		Details:    fmt.Sprintf("sending through %s", provider),
		Cause:      cause,
		Public:     "Failed to send message",
	}
}

func NewSMSDeliveryError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrSMSDeliveryFailed,
		Details:    fmt.Sprintf("sending through %s", provider),
		Cause:      cause,
	}
}

func NewConfigMissingError(varName string) error {
	return fmt.Errorf("%w: %s must be set", ErrConfigMissing, varName)
}

func NewConfigInvalidError(varName, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrConfigInvalid, varName, reason)
}

func IsMailDeliveryError(err error) bool {
	return errors.Is(err, ErrMailDeliveryFailed)
}

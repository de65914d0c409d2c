package controller

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"syscall"

	"stockscan/internal/dto"
)

// describeNetworkError flattens a transport failure into message/code plus
// the innermost cause, so operators can tell DNS, TLS and refused
// connections apart without server access.
func describeNetworkError(err error) dto.NetworkErrorDetails {
	details := dto.NetworkErrorDetails{
		Message: err.Error(),
		Code:    optional(errorCode(err)),
	}

	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		cause = urlErr.Err
	}
	for {
		next := errors.Unwrap(cause)
		if next == nil {
			break
		}
		cause = next
	}

	if cause != err {
		details.Cause = optional(cause.Error())
		details.CauseCode = optional(errorCode(cause))
	}
	return details
}

func errorCode(err error) string {
	var (
		dnsErr      *net.DNSError
		certErr     *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		netErr      net.Error
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "ETIMEDOUT"
	case errors.Is(err, context.Canceled):
		return "ECANCELED"
	case errors.As(err, &dnsErr):
		return "ENOTFOUND"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "ECONNREFUSED"
	case errors.Is(err, syscall.ECONNRESET):
		return "ECONNRESET"
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return "EHOSTUNREACH"
	case errors.As(err, &certErr), errors.As(err, &unknownAuth), errors.As(err, &hostnameErr):
		return "CERT_VERIFICATION_FAILED"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "ETIMEDOUT"
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

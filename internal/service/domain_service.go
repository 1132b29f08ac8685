package service

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// dnsResolver is the part of net.Resolver the domain check needs, split out
// so tests can stub lookups.
type dnsResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// DomainService checks that an email address points at a domain that can
// actually receive mail, so typo'd addresses are caught before the more
// expensive transport stage.
type DomainService struct {
	resolver dnsResolver
	timeout  time.Duration
}

// NewDomainService creates a domain service using the system resolver
func NewDomainService() *DomainService {
	return &DomainService{
		resolver: net.DefaultResolver,
		timeout:  5 * time.Second,
	}
}

// ValidateEmailDomain extracts the domain of the address and verifies it has
// at least one MX record or, failing that, at least one A/AAAA record.
func (s *DomainService) ValidateEmailDomain(ctx context.Context, email string) error {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return fmt.Errorf("%w: malformed address", ErrDomainInvalid)
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if mxs, err := s.resolver.LookupMX(ctx, domain); err == nil && len(mxs) > 0 {
		return nil
	}

	// Some domains receive mail on their A record
	addrs, err := s.resolver.LookupHost(ctx, domain)
	if err != nil || len(addrs) == 0 {
		return fmt.Errorf("%w: %s has no MX or address records", ErrDomainInvalid, domain)
	}

	return nil
}

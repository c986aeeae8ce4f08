package stores

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

var (
	ErrDomainTaken    = errors.New("domain name is already taken")
	ErrInvalidDomain  = errors.New("domain name may only contain letters, digits and hyphens")
	ErrMissingName    = errors.New("store name is required")
	ErrStoreNotFound  = errors.New("store not found")
	ErrUnsupportedGeo = errors.New("unsupported country or currency")
)

// The platform currently ships for a single market.
const (
	SupportedCountry  = "Kuwait"
	SupportedCurrency = "KWD"
)

var domainRe = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Availability is the tri-state outcome of a domain check.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	Available
	Unavailable
)

// Service manages store tenants.
type Service struct {
	gw gateway.Client
}

func NewService(gw gateway.Client) *Service {
	return &Service{gw: gw}
}

// CheckDomain validates the candidate name format first; a name with a
// character outside [a-zA-Z0-9-] is Unavailable without any remote call,
// and names shorter than 3 characters stay Unknown. Otherwise the stores
// table decides.
func (s *Service) CheckDomain(ctx context.Context, name string) (Availability, error) {
	if len(name) < 3 {
		return AvailabilityUnknown, nil
	}
	if !domainRe.MatchString(name) {
		return Unavailable, nil
	}
	var row domain.Store
	found, err := s.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "stores",
		Selects: []string{"stores.domain_name"},
		Filters: []gateway.Filter{gateway.Eq("domain_name", name)},
	}, &row)
	if err != nil {
		return AvailabilityUnknown, err
	}
	if found {
		return Unavailable, nil
	}
	return Available, nil
}

// StoreInput is the creation payload of the signup wizard.
type StoreInput struct {
	StoreName  string `json:"store_name" validate:"required"`
	DomainName string `json:"domain_name" validate:"required,min=3"`
	Country    string `json:"country"`
	Currency   string `json:"currency"`
	LogoURL    string `json:"logo_url"`
}

// Create provisions a store for a merchant after re-checking domain
// uniqueness server-side.
func (s *Service) Create(ctx context.Context, userID string, in StoreInput) (*domain.Store, error) {
	in.StoreName = strings.TrimSpace(in.StoreName)
	in.DomainName = strings.TrimSpace(strings.ToLower(in.DomainName))
	if in.StoreName == "" {
		return nil, ErrMissingName
	}
	if len(in.DomainName) < 3 || !domainRe.MatchString(in.DomainName) {
		return nil, ErrInvalidDomain
	}
	if in.Country == "" {
		in.Country = SupportedCountry
	}
	if in.Currency == "" {
		in.Currency = SupportedCurrency
	}
	if in.Country != SupportedCountry || in.Currency != SupportedCurrency {
		return nil, ErrUnsupportedGeo
	}

	avail, err := s.CheckDomain(ctx, in.DomainName)
	if err != nil {
		return nil, err
	}
	if avail != Available {
		return nil, ErrDomainTaken
	}

	store := domain.Store{
		ID:         common.UUID(),
		UserID:     userID,
		StoreName:  in.StoreName,
		DomainName: in.DomainName,
		Country:    in.Country,
		Currency:   in.Currency,
		LogoURL:    in.LogoURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.gw.Insert(ctx, "stores", &store); err != nil {
		zap.S().Errorf("create store failed: %s", err.Error())
		return nil, err
	}
	return &store, nil
}

// GetByDomain resolves a storefront tenant from its public domain name.
func (s *Service) GetByDomain(ctx context.Context, domainName string) (*domain.Store, error) {
	var store domain.Store
	err := s.gw.QueryOne(ctx, gateway.Spec{
		Table:   "stores",
		Filters: []gateway.Filter{gateway.Eq("domain_name", domainName)},
	}, &store)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// GetByUserID resolves the merchant's store, the scoping value of every
// dashboard query.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.Store, error) {
	var store domain.Store
	err := s.gw.QueryOne(ctx, gateway.Spec{
		Table:   "stores",
		Filters: []gateway.Filter{gateway.Eq("user_id", userID)},
	}, &store)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// UpdateBranding patches the display fields of a store.
func (s *Service) UpdateBranding(ctx context.Context, storeID string, patch map[string]interface{}) error {
	patch["updated_at"] = time.Now()
	_, err := s.gw.Update(ctx, "stores", patch, gateway.Eq("id", storeID))
	return err
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
	"github.com/mercado-labs/mercado-core/internal/validation"
)

// Ensure storeService implements StoreService
var _ driving.StoreService = (*storeService)(nil)

type storeService struct {
	stores      driven.StoreStore
	users       driven.UserStore
	products    driven.ProductStore
	authAdapter driven.AuthAdapter
	resolver    driven.AddressResolver
}

// NewStoreService creates a new StoreService
func NewStoreService(
	stores driven.StoreStore,
	users driven.UserStore,
	products driven.ProductStore,
	authAdapter driven.AuthAdapter,
	resolver driven.AddressResolver,
) driving.StoreService {
	return &storeService{
		stores:      stores,
		users:       users,
		products:    products,
		authAdapter: authAdapter,
		resolver:    resolver,
	}
}

// Create registers a standalone store account
func (s *storeService) Create(ctx context.Context, req driving.CreateStoreRequest) (*domain.Identity, error) {
	if req.Email == "" || req.Password == "" || req.LegalName == "" || req.TradeName == "" || req.Number == "" {
		return nil, domain.ErrInvalidInput
	}

	cnpj, err := validation.CNPJ(req.CNPJ)
	if err != nil {
		return nil, err
	}
	mobile, err := validation.MobilePhone(req.MobilePhone)
	if err != nil {
		return nil, err
	}
	var home string
	if req.HomePhone != "" {
		if home, err = validation.Phone(req.HomePhone); err != nil {
			return nil, err
		}
	}
	cep, err := validation.CEP(req.CEP)
	if err != nil {
		return nil, err
	}

	tradeName := strings.ToUpper(strings.TrimSpace(req.TradeName))

	if err := emailFree(ctx, s.users, s.stores, req.Email); err != nil {
		return nil, err
	}
	if _, err := s.stores.GetByName(ctx, tradeName); err == nil {
		return nil, domain.ErrDuplicate
	}
	if _, err := s.stores.GetByCNPJ(ctx, cnpj); err == nil {
		return nil, domain.ErrDuplicate
	}
	if err := phoneFree(ctx, s.users, s.stores, mobile); err != nil {
		return nil, err
	}

	address, err := s.resolver.Resolve(ctx, cep)
	if err != nil {
		return nil, err
	}
	address.Number = req.Number
	address.Complement = req.Complement

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	store := &domain.Identity{
		ID:           uuid.NewString(),
		Kind:         domain.KindStore,
		Email:        req.Email,
		PasswordHash: hash,
		Store: &domain.StoreProfile{
			LegalName:   strings.ToUpper(strings.TrimSpace(req.LegalName)),
			TradeName:   tradeName,
			CNPJ:        cnpj,
			Address:     *address,
			MobilePhone: mobile,
			HomePhone:   home,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// CreateByUser registers a store owned by the authenticated user. Profile
// fields left empty are inherited from the user; the store shares the
// user's password hash. The email cannot be inherited: a user and a store
// never share one.
func (s *storeService) CreateByUser(ctx context.Context, auth *domain.AuthContext, req driving.CreateStoreByUserRequest) (*domain.Identity, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, auth.IdentityID)
	if err != nil {
		return nil, err
	}
	if req.TradeName == "" || req.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	tradeName := strings.ToUpper(strings.TrimSpace(req.TradeName))

	var cnpj string
	if req.CNPJ != "" {
		if cnpj, err = validation.CNPJ(req.CNPJ); err != nil {
			return nil, err
		}
	}

	mobile := user.User.MobilePhone
	if req.MobilePhone != "" {
		if mobile, err = validation.MobilePhone(req.MobilePhone); err != nil {
			return nil, err
		}
	}

	address := user.User.Address
	if req.CEP != "" {
		cep, err := validation.CEP(req.CEP)
		if err != nil {
			return nil, err
		}
		resolved, err := s.resolver.Resolve(ctx, cep)
		if err != nil {
			return nil, err
		}
		resolved.Number = req.Number
		resolved.Complement = req.Complement
		address = *resolved
	}

	if err := emailFree(ctx, s.users, s.stores, req.Email); err != nil {
		return nil, err
	}
	if _, err := s.stores.GetByName(ctx, tradeName); err == nil {
		return nil, domain.ErrDuplicate
	}
	if cnpj != "" {
		if _, err := s.stores.GetByCNPJ(ctx, cnpj); err == nil {
			return nil, domain.ErrDuplicate
		}
	}
	// Only the store table is checked here: an inherited phone legitimately
	// matches the owner's
	if _, err := s.stores.GetByPhone(ctx, mobile); err == nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	store := &domain.Identity{
		ID:           uuid.NewString(),
		Kind:         domain.KindStore,
		Email:        req.Email,
		PasswordHash: user.PasswordHash,
		Store: &domain.StoreProfile{
			LegalName:   user.User.Name,
			TradeName:   tradeName,
			CNPJ:        cnpj,
			CPF:         user.User.CPF,
			Address:     address,
			MobilePhone: mobile,
			HomePhone:   user.User.HomePhone,
			OwnerUserID: &user.ID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Get retrieves the authenticated store's record
func (s *storeService) Get(ctx context.Context, auth *domain.AuthContext) (*domain.Identity, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindStore); err != nil {
		return nil, err
	}
	return s.stores.Get(ctx, auth.IdentityID)
}

// GetUserStores lists the authenticated user's stores, or fetches one of
// them when storeID is set
func (s *storeService) GetUserStores(ctx context.Context, auth *domain.AuthContext, storeID string) ([]*domain.Identity, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	if storeID == "" {
		return s.stores.ListByOwner(ctx, auth.IdentityID)
	}

	store, err := s.stores.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := assertStoreOwner(auth, store); err != nil {
		return nil, err
	}
	return []*domain.Identity{store}, nil
}

// Update re-derives the full store record. Email and password changes
// require the current password.
func (s *storeService) Update(ctx context.Context, auth *domain.AuthContext, req driving.UpdateStoreRequest) (*domain.Identity, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindStore); err != nil {
		return nil, err
	}
	store, err := s.stores.Get(ctx, auth.IdentityID)
	if err != nil {
		return nil, err
	}

	if req.NewEmail != nil || req.NewPassword != nil {
		if req.Password == "" || !s.authAdapter.VerifyPassword(req.Password, store.PasswordHash) {
			return nil, domain.ErrInvalidCredentials
		}
	}

	next := *store
	profile := *store.Store
	next.Store = &profile

	if req.NewEmail != nil && *req.NewEmail != store.Email {
		if err := emailFree(ctx, s.users, s.stores, *req.NewEmail); err != nil {
			return nil, err
		}
		next.Email = *req.NewEmail
	}
	if req.NewTradeName != nil {
		tradeName := strings.ToUpper(strings.TrimSpace(*req.NewTradeName))
		if tradeName != store.Store.TradeName {
			if _, err := s.stores.GetByName(ctx, tradeName); err == nil {
				return nil, domain.ErrDuplicate
			}
			profile.TradeName = tradeName
		}
	}
	if req.NewMobilePhone != nil {
		mobile, err := validation.MobilePhone(*req.NewMobilePhone)
		if err != nil {
			return nil, err
		}
		if mobile != store.Store.MobilePhone {
			if err := phoneFree(ctx, s.users, s.stores, mobile); err != nil {
				return nil, err
			}
			profile.MobilePhone = mobile
		}
	}
	if req.NewCEP != nil {
		cep, err := validation.CEP(*req.NewCEP)
		if err != nil {
			return nil, err
		}
		resolved, err := s.resolver.Resolve(ctx, cep)
		if err != nil {
			return nil, err
		}
		resolved.Number = profile.Address.Number
		resolved.Complement = profile.Address.Complement
		profile.Address = *resolved
	}
	if req.NewNumber != nil {
		profile.Address.Number = *req.NewNumber
	}
	if req.NewComplement != nil {
		profile.Address.Complement = *req.NewComplement
	}

	passwordChanged := false
	if req.NewPassword != nil && !s.authAdapter.VerifyPassword(*req.NewPassword, store.PasswordHash) {
		hash, err := s.authAdapter.HashPassword(*req.NewPassword)
		if err != nil {
			return nil, err
		}
		next.PasswordHash = hash
		passwordChanged = true
	}

	if !passwordChanged &&
		next.Email == store.Email &&
		profile.TradeName == store.Store.TradeName &&
		profile.MobilePhone == store.Store.MobilePhone &&
		profile.Address == store.Store.Address {
		return nil, domain.ErrNoChange
	}

	next.UpdatedAt = time.Now().UTC()
	if err := s.stores.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete soft-deletes the authenticated store and its catalog
func (s *storeService) Delete(ctx context.Context, auth *domain.AuthContext) error {
	if err := domain.AssertKind(auth.Kind, domain.KindStore); err != nil {
		return err
	}
	store, err := s.stores.Get(ctx, auth.IdentityID)
	if err != nil {
		return err
	}
	if err := s.products.DeleteByStore(ctx, store.ID); err != nil {
		return err
	}
	return s.stores.Delete(ctx, store.ID)
}

// DeleteUserStore soft-deletes one of the authenticated user's stores and
// its catalog
func (s *storeService) DeleteUserStore(ctx context.Context, auth *domain.AuthContext, storeID string) error {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return err
	}
	store, err := s.stores.Get(ctx, storeID)
	if err != nil {
		return err
	}
	if err := assertStoreOwner(auth, store); err != nil {
		return err
	}
	if err := s.products.DeleteByStore(ctx, store.ID); err != nil {
		return err
	}
	return s.stores.Delete(ctx, store.ID)
}

// Search retrieves a store's public record by id
func (s *storeService) Search(ctx context.Context, storeID string) (*domain.Identity, error) {
	return s.stores.Get(ctx, storeID)
}

// assertStoreOwner checks the token's identity against the store's owning
// user. Standalone stores have no owner; no user token reaches them.
func assertStoreOwner(auth *domain.AuthContext, store *domain.Identity) error {
	if store.Store == nil || store.Store.OwnerUserID == nil {
		return domain.ErrForbidden
	}
	return domain.AssertOwner(auth.IdentityID, *store.Store.OwnerUserID)
}

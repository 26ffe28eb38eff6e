package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
	"github.com/mercado-labs/mercado-core/internal/validation"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

type userService struct {
	users       driven.UserStore
	stores      driven.StoreStore
	products    driven.ProductStore
	carts       driven.CartStore
	authAdapter driven.AuthAdapter
	gateway     driven.PaymentGateway
	resolver    driven.AddressResolver
	logger      *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users driven.UserStore,
	stores driven.StoreStore,
	products driven.ProductStore,
	carts driven.CartStore,
	authAdapter driven.AuthAdapter,
	gateway driven.PaymentGateway,
	resolver driven.AddressResolver,
	logger *slog.Logger,
) driving.UserService {
	return &userService{
		users:       users,
		stores:      stores,
		products:    products,
		carts:       carts,
		authAdapter: authAdapter,
		gateway:     gateway,
		resolver:    resolver,
		logger:      logger,
	}
}

// Create registers a user together with its gateway customer and its cart
func (s *userService) Create(ctx context.Context, req driving.CreateUserRequest) (*domain.Identity, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validation.Adult(req.Birthdate, time.Now()); err != nil {
		return nil, err
	}

	cpf, err := validation.CPF(req.CPF)
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

	if err := emailFree(ctx, s.users, s.stores, req.Email); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByCPF(ctx, cpf); err == nil {
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
	address.Reference = req.Reference

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.Identity{
		ID:           uuid.NewString(),
		Kind:         domain.KindUser,
		Email:        req.Email,
		PasswordHash: hash,
		User: &domain.UserProfile{
			Name:        strings.ToUpper(strings.TrimSpace(req.Name)),
			CPF:         cpf,
			Birthdate:   req.Birthdate,
			Address:     *address,
			MobilePhone: mobile,
			HomePhone:   home,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	customerID, err := s.gateway.CreateCustomer(ctx, userCustomer(user))
	if err != nil {
		s.logger.Error("customer registration failed", "email", req.Email, "error", err)
		return nil, err
	}
	user.User.CustomerID = customerID

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	cart := &domain.Cart{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves the authenticated user's record
func (s *userService) Get(ctx context.Context, auth *domain.AuthContext) (*domain.Identity, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	return s.users.Get(ctx, auth.IdentityID)
}

// Update re-derives the full user record from the request plus the existing
// row. Email and password changes require the current password.
func (s *userService) Update(ctx context.Context, auth *domain.AuthContext, req driving.UpdateUserRequest) (*domain.Identity, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, auth.IdentityID)
	if err != nil {
		return nil, err
	}

	if req.NewEmail != nil || req.NewPassword != nil {
		if req.Password == "" || !s.authAdapter.VerifyPassword(req.Password, user.PasswordHash) {
			return nil, domain.ErrInvalidCredentials
		}
	}

	next := *user
	profile := *user.User
	next.User = &profile

	if req.NewEmail != nil && *req.NewEmail != user.Email {
		if err := emailFree(ctx, s.users, s.stores, *req.NewEmail); err != nil {
			return nil, err
		}
		next.Email = *req.NewEmail
	}
	if req.NewName != nil {
		profile.Name = strings.ToUpper(strings.TrimSpace(*req.NewName))
	}
	if req.NewMobilePhone != nil {
		mobile, err := validation.MobilePhone(*req.NewMobilePhone)
		if err != nil {
			return nil, err
		}
		if mobile != user.User.MobilePhone {
			if err := phoneFree(ctx, s.users, s.stores, mobile); err != nil {
				return nil, err
			}
			profile.MobilePhone = mobile
		}
	}
	if req.NewHomePhone != nil {
		home, err := validation.Phone(*req.NewHomePhone)
		if err != nil {
			return nil, err
		}
		profile.HomePhone = home
	}
	if req.NewCEP != nil {
		cep, err := validation.CEP(*req.NewCEP)
		if err != nil {
			return nil, err
		}
		address, err := s.resolver.Resolve(ctx, cep)
		if err != nil {
			return nil, err
		}
		address.Number = profile.Address.Number
		address.Complement = profile.Address.Complement
		address.Reference = profile.Address.Reference
		profile.Address = *address
	}
	if req.NewNumber != nil {
		profile.Address.Number = *req.NewNumber
	}
	if req.NewComplement != nil {
		profile.Address.Complement = *req.NewComplement
	}

	passwordChanged := false
	if req.NewPassword != nil && !s.authAdapter.VerifyPassword(*req.NewPassword, user.PasswordHash) {
		hash, err := s.authAdapter.HashPassword(*req.NewPassword)
		if err != nil {
			return nil, err
		}
		next.PasswordHash = hash
		passwordChanged = true
	}

	if !passwordChanged &&
		next.Email == user.Email &&
		profile.Name == user.User.Name &&
		profile.MobilePhone == user.User.MobilePhone &&
		profile.HomePhone == user.User.HomePhone &&
		profile.Address == user.User.Address {
		return nil, domain.ErrNoChange
	}

	if user.User.CustomerID != "" {
		if err := s.gateway.UpdateCustomer(ctx, user.User.CustomerID, userCustomer(&next)); err != nil {
			s.logger.Error("customer update failed", "customer_id", user.User.CustomerID, "error", err)
			return nil, err
		}
	}

	next.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete soft-deletes the user and cascades its stores, their products and
// the cart. The current password is re-checked even on a valid token.
func (s *userService) Delete(ctx context.Context, auth *domain.AuthContext, password string) error {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return err
	}
	user, err := s.users.Get(ctx, auth.IdentityID)
	if err != nil {
		return err
	}
	if !s.authAdapter.VerifyPassword(password, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	if err := s.products.DeleteByOwnerUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.stores.DeleteByOwner(ctx, user.ID); err != nil {
		return err
	}
	if err := s.carts.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

// emailFree checks both account tables; a user and a store can never share
// an email
func emailFree(ctx context.Context, users driven.UserStore, stores driven.StoreStore, email string) error {
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return domain.ErrDuplicate
	}
	if _, err := stores.GetByEmail(ctx, email); err == nil {
		return domain.ErrDuplicate
	}
	return nil
}

// phoneFree checks both account tables
func phoneFree(ctx context.Context, users driven.UserStore, stores driven.StoreStore, phone string) error {
	if _, err := users.GetByPhone(ctx, phone); err == nil {
		return domain.ErrDuplicate
	}
	if _, err := stores.GetByPhone(ctx, phone); err == nil {
		return domain.ErrDuplicate
	}
	return nil
}

// userCustomer maps a user identity onto the gateway's customer shape
func userCustomer(user *domain.Identity) *domain.Customer {
	profile := user.User
	return &domain.Customer{
		Name:         profile.Name,
		Email:        user.Email,
		Document:     profile.CPF,
		DocumentType: "CPF",
		Type:         domain.CustomerIndividual,
		Birthdate:    validation.GatewayBirthdate(profile.Birthdate),
		Phones:       gatewayPhones(profile.MobilePhone, profile.HomePhone),
		Address:      gatewayAddress(profile.Address),
	}
}

func gatewayPhones(mobile, home string) domain.CustomerPhones {
	phones := domain.CustomerPhones{MobilePhone: gatewayPhone(mobile)}
	if home != "" {
		phones.HomePhone = gatewayPhone(home)
	}
	return phones
}

func gatewayPhone(normalized string) *domain.CustomerPhone {
	if normalized == "" {
		return nil
	}
	area, number := validation.SplitPhone(normalized)
	return &domain.CustomerPhone{
		CountryCode: "55",
		AreaCode:    area,
		Number:      number,
	}
}

func gatewayAddress(addr domain.Address) domain.CustomerAddress {
	line1 := addr.Number + ", " + addr.Street + ", " + addr.Neighborhood
	return domain.CustomerAddress{
		Line1:   line1,
		Line2:   addr.Complement,
		ZipCode: addr.CEP,
		City:    addr.City,
		State:   addr.State,
		Country: "BR",
	}
}

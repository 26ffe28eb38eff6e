package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driven"
	"github.com/mercado-labs/mercado-core/internal/core/ports/driving"
	"github.com/mercado-labs/mercado-core/internal/validation"
)

// Ensure walletService implements WalletService
var _ driving.WalletService = (*walletService)(nil)

type walletService struct {
	users   driven.UserStore
	stores  driven.StoreStore
	gateway driven.PaymentGateway
	logger  *slog.Logger
}

// NewWalletService creates a new WalletService
func NewWalletService(
	users driven.UserStore,
	stores driven.StoreStore,
	gateway driven.PaymentGateway,
	logger *slog.Logger,
) driving.WalletService {
	return &walletService{
		users:   users,
		stores:  stores,
		gateway: gateway,
		logger:  logger,
	}
}

// RegisterUserRecipient registers the authenticated user as an individual
// payout recipient and persists the returned id
func (s *walletService) RegisterUserRecipient(ctx context.Context, auth *domain.AuthContext, req driving.RegisterUserRecipientRequest) (string, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return "", err
	}
	user, err := s.users.Get(ctx, auth.IdentityID)
	if err != nil {
		return "", err
	}
	if req.MonthlyIncome <= 0 || req.ProfessionalOccupation == "" {
		return "", domain.ErrInvalidInput
	}
	if err := validBankAccount(req.BankAccount); err != nil {
		return "", err
	}

	address := gatewayAddress(user.User.Address)
	recipient := &domain.Recipient{
		RegisterInformation: domain.RecipientRegisterInformation{
			Type:                   "individual",
			Name:                   user.User.Name,
			Email:                  user.Email,
			Document:               user.User.CPF,
			Birthdate:              validation.GatewayBirthdate(user.User.Birthdate),
			MonthlyIncome:          req.MonthlyIncome,
			ProfessionalOccupation: req.ProfessionalOccupation,
			PhoneNumbers:           []string{"+55" + user.User.MobilePhone},
			Address:                &address,
		},
		DefaultBankAccount: bankAccount(req.BankAccount, user.User.Name, user.User.CPF, "individual"),
	}

	recipientID, err := s.gateway.CreateRecipient(ctx, recipient)
	if err != nil {
		s.logger.Error("recipient registration failed", "identity_id", user.ID, "error", err)
		return "", err
	}

	user.User.RecipientID = recipientID
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	return recipientID, nil
}

// RegisterStoreRecipient registers the authenticated store as a corporate
// payout recipient. Corporate registration needs a CNPJ and at least one
// managing partner.
func (s *walletService) RegisterStoreRecipient(ctx context.Context, auth *domain.AuthContext, req driving.RegisterStoreRecipientRequest) (string, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindStore); err != nil {
		return "", err
	}
	store, err := s.stores.Get(ctx, auth.IdentityID)
	if err != nil {
		return "", err
	}
	if store.Store.CNPJ == "" || req.AnnualRevenue <= 0 || len(req.ManagingPartners) == 0 {
		return "", domain.ErrInvalidInput
	}
	if err := validBankAccount(req.BankAccount); err != nil {
		return "", err
	}

	address := gatewayAddress(store.Store.Address)
	partners := make([]domain.ManagingPartner, 0, len(req.ManagingPartners))
	for _, p := range req.ManagingPartners {
		if p.Name == "" || p.Email == "" || p.Birthdate == "" {
			return "", domain.ErrInvalidInput
		}
		cpf, err := validation.CPF(p.CPF)
		if err != nil {
			return "", err
		}
		phone, err := validation.MobilePhone(p.MobilePhone)
		if err != nil {
			return "", err
		}
		partners = append(partners, domain.ManagingPartner{
			Name:                   p.Name,
			Email:                  p.Email,
			Document:               cpf,
			Type:                   "individual",
			Birthdate:              p.Birthdate,
			MonthlyIncome:          p.MonthlyIncome,
			ProfessionalOccupation: p.ProfessionalOccupation,
			SelfDeclaredLegalRep:   p.SelfDeclaredLegalRep,
			Address:                address,
			PhoneNumbers:           []string{"+55" + phone},
		})
	}

	recipient := &domain.Recipient{
		RegisterInformation: domain.RecipientRegisterInformation{
			Type:             "corporation",
			CompanyName:      store.Store.LegalName,
			TradingName:      store.Store.TradeName,
			Email:            store.Email,
			Document:         store.Store.CNPJ,
			AnnualRevenue:    req.AnnualRevenue,
			PhoneNumbers:     []string{"+55" + store.Store.MobilePhone},
			MainAddress:      &address,
			ManagingPartners: partners,
		},
		DefaultBankAccount: bankAccount(req.BankAccount, store.Store.LegalName, store.Store.CNPJ, "company"),
	}

	recipientID, err := s.gateway.CreateRecipient(ctx, recipient)
	if err != nil {
		s.logger.Error("recipient registration failed", "identity_id", store.ID, "error", err)
		return "", err
	}

	store.Store.RecipientID = recipientID
	store.UpdatedAt = time.Now().UTC()
	if err := s.stores.Save(ctx, store); err != nil {
		return "", err
	}
	return recipientID, nil
}

// RegisterCard registers a credit card under the authenticated user's
// gateway customer and persists the returned id
func (s *walletService) RegisterCard(ctx context.Context, auth *domain.AuthContext, req driving.RegisterCardRequest) (string, error) {
	if err := domain.AssertKind(auth.Kind, domain.KindUser); err != nil {
		return "", err
	}
	user, err := s.users.Get(ctx, auth.IdentityID)
	if err != nil {
		return "", err
	}
	// A card needs a customer to hang off
	if user.User.CustomerID == "" {
		return "", domain.ErrInvalidInput
	}
	if req.Number == "" || req.ExpMonth < 1 || req.ExpMonth > 12 || req.ExpYear < time.Now().Year() {
		return "", domain.ErrInvalidInput
	}
	if len(req.CVV) != 3 && len(req.CVV) != 4 {
		return "", domain.ErrInvalidInput
	}

	holder := req.HolderName
	if holder == "" {
		holder = user.User.Name
	}
	card := &domain.CreditCard{
		Number:         req.Number,
		HolderName:     holder,
		HolderDocument: user.User.CPF,
		ExpMonth:       req.ExpMonth,
		ExpYear:        req.ExpYear,
		CVV:            req.CVV,
		BillingAddress: gatewayAddress(user.User.Address),
	}

	cardID, err := s.gateway.CreateCard(ctx, user.User.CustomerID, card)
	if err != nil {
		s.logger.Error("card registration failed", "identity_id", user.ID, "error", err)
		return "", err
	}

	user.User.CardID = cardID
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	return cardID, nil
}

func validBankAccount(acc driving.BankAccountRequest) error {
	if acc.Bank == "" || acc.BranchNumber == "" || acc.AccountNumber == "" || acc.AccountCheckDigit == "" {
		return domain.ErrInvalidInput
	}
	if acc.Type != "checking" && acc.Type != "savings" {
		return domain.ErrInvalidInput
	}
	return nil
}

func bankAccount(acc driving.BankAccountRequest, holderName, holderDocument, holderType string) domain.BankAccount {
	return domain.BankAccount{
		Bank:              acc.Bank,
		BranchNumber:      acc.BranchNumber,
		BranchCheckDigit:  acc.BranchCheckDigit,
		AccountNumber:     acc.AccountNumber,
		AccountCheckDigit: acc.AccountCheckDigit,
		HolderName:        holderName,
		HolderDocument:    holderDocument,
		HolderType:        holderType,
		Type:              acc.Type,
	}
}

package domain

// Payment gateway payload types. These mirror the Pagarme core v5 API
// shapes; the gateway returns opaque ids that are persisted on the identity.

// CustomerType distinguishes individual (CPF) from company (CNPJ) customers
type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerCompany    CustomerType = "company"
)

// CustomerPhone is a phone number split the way the gateway expects it
type CustomerPhone struct {
	CountryCode string `json:"country_code"`
	AreaCode    string `json:"area_code"`
	Number      string `json:"number"`
}

// CustomerPhones groups the registered phone numbers of a customer
type CustomerPhones struct {
	MobilePhone *CustomerPhone `json:"mobile_phone,omitempty"`
	HomePhone   *CustomerPhone `json:"home_phone,omitempty"`
}

// CustomerAddress is the gateway-side address shape
type CustomerAddress struct {
	Line1   string `json:"line_1"` // "number, street, neighborhood"
	Line2   string `json:"line_2,omitempty"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Customer is a buyer registered at the gateway
type Customer struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Document     string          `json:"document"`
	DocumentType string          `json:"document_type"` // "CPF" or "CNPJ"
	Type         CustomerType    `json:"type"`
	Birthdate    string          `json:"birthdate,omitempty"` // "DD/MM/YYYY"
	Phones       CustomerPhones  `json:"phones"`
	Address      CustomerAddress `json:"address"`
}

// BankAccount is the payout destination of a recipient
type BankAccount struct {
	Bank              string `json:"bank"`
	BranchNumber      string `json:"branch_number"`
	BranchCheckDigit  string `json:"branch_check_digit"`
	AccountNumber     string `json:"account_number"`
	AccountCheckDigit string `json:"account_check_digit"`
	HolderName        string `json:"holder_name"`
	HolderDocument    string `json:"holder_document"`
	HolderType        string `json:"holder_type"` // "individual" or "company"
	Type              string `json:"type"`        // "checking" or "savings"
}

// ManagingPartner is a legal representative of a corporate recipient
type ManagingPartner struct {
	Name                    string          `json:"name"`
	Email                   string          `json:"email"`
	Document                string          `json:"document"`
	Type                    string          `json:"type"`
	Birthdate               string          `json:"birthdate"`
	MonthlyIncome           int64           `json:"monthly_income"`
	ProfessionalOccupation  string          `json:"professional_occupation"`
	SelfDeclaredLegalRep    bool            `json:"self_declared_legal_representative"`
	Address                 CustomerAddress `json:"address"`
	PhoneNumbers            []string        `json:"phone_numbers"`
}

// RecipientRegisterInformation is the KYC block of a recipient registration
type RecipientRegisterInformation struct {
	Type                   string            `json:"type"` // "individual" or "corporation"
	Name                   string            `json:"name,omitempty"`
	CompanyName            string            `json:"company_name,omitempty"`
	TradingName            string            `json:"trading_name,omitempty"`
	Email                  string            `json:"email"`
	Document               string            `json:"document"`
	Birthdate              string            `json:"birthdate,omitempty"`
	MonthlyIncome          int64             `json:"monthly_income,omitempty"`
	AnnualRevenue          int64             `json:"annual_revenue,omitempty"`
	ProfessionalOccupation string            `json:"professional_occupation,omitempty"`
	PhoneNumbers           []string          `json:"phone_numbers"`
	Address                *CustomerAddress  `json:"address,omitempty"`
	MainAddress            *CustomerAddress  `json:"main_address,omitempty"`
	ManagingPartners       []ManagingPartner `json:"managing_partners,omitempty"`
}

// Recipient is a payout destination registered at the gateway
type Recipient struct {
	RegisterInformation RecipientRegisterInformation `json:"register_information"`
	DefaultBankAccount  BankAccount                  `json:"default_bank_account"`
}

// CreditCard is a card registered under a gateway customer
type CreditCard struct {
	Brand          string          `json:"brand,omitempty"`
	Number         string          `json:"number"`
	HolderName     string          `json:"holder_name"`
	HolderDocument string          `json:"holder_document"`
	ExpMonth       int             `json:"exp_month"`
	ExpYear        int             `json:"exp_year"`
	CVV            string          `json:"cvv"`
	BillingAddress CustomerAddress `json:"billing_address"`
}

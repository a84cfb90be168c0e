package domain

// AccountType classifies linked accounts by their top-level kind.
type AccountType string

const (
	AccountTypeInvestment AccountType = "investment"
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
)

// Account is a household's linked financial account. Records are owned and
// mutated by the account-data service; this service only reads them.
type Account struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	OfficialName    *string     `json:"officialName"`
	InstitutionName string      `json:"institutionName"`
	Mask            *string     `json:"mask"`
	Type            AccountType `json:"type"`
	Subtype         *string     `json:"subtype"`
	CurrentBalance  *string     `json:"currentBalance"`
	OwnerUserID     *string     `json:"ownerUserId"`
	IsManual        bool        `json:"isManual"`
	IsHidden        bool        `json:"isHidden"`
}

// IsInvestment reports whether the account holds positions.
func (a Account) IsInvestment() bool {
	return a.Type == AccountTypeInvestment
}

// Shared reports whether the account has no assigned owner.
func (a Account) Shared() bool {
	return a.OwnerUserID == nil
}

// Member is a household member accounts can be assigned to.
type Member struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

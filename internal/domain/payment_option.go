package domain

// PaymentMethodType identifies the source of funds of a payment option.
type PaymentMethodType string

const (
	MethodBankCard       PaymentMethodType = "bank_card"
	MethodYooMoney       PaymentMethodType = "yoo_money"
	MethodYandexMoney    PaymentMethodType = "yandex_money" // legacy name of MethodYooMoney
	MethodLinkedBankCard PaymentMethodType = "linked_bank_card"
	MethodSberbank       PaymentMethodType = "sberbank"
	MethodApplePay       PaymentMethodType = "apple_pay"
)

// IsWallet reports whether t is either generation of the wallet type.
func (t PaymentMethodType) IsWallet() bool {
	return t == MethodYooMoney || t == MethodYandexMoney
}

// Canonical folds the legacy wallet name into its successor.
func (t PaymentMethodType) Canonical() PaymentMethodType {
	if t == MethodYandexMoney {
		return MethodYooMoney
	}
	return t
}

func (t PaymentMethodType) Valid() bool {
	switch t {
	case MethodBankCard, MethodYooMoney, MethodYandexMoney, MethodLinkedBankCard, MethodSberbank, MethodApplePay:
		return true
	}
	return false
}

// ParsePaymentMethodTypes parses a list of type names, ignoring blanks.
func ParsePaymentMethodTypes(names []string) ([]PaymentMethodType, error) {
	types := make([]PaymentMethodType, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		t := PaymentMethodType(n)
		if !t.Valid() {
			return nil, NewInvalidFieldError("payment_method_types", nil)
		}
		types = append(types, t)
	}
	return types, nil
}

// LinkedCard is a bank card bound to a wallet account.
type LinkedCard struct {
	CardID   string `json:"card_id"`
	Pan      string `json:"pan"`
	CardName string `json:"card_name,omitempty"`
	CardType string `json:"card_type,omitempty"`
}

// PaymentOption is one entry of the backend's payment options list.
type PaymentOption struct {
	ID                       string            `json:"id"`
	Type                     PaymentMethodType `json:"payment_method_type"`
	Charge                   Amount            `json:"charge"`
	SavePaymentMethodAllowed bool              `json:"save_payment_method_allowed"`
	DisplayName              string            `json:"display_name,omitempty"`

	// Wallet only.
	Balance           *Amount      `json:"balance,omitempty"`
	LinkedCards       []LinkedCard `json:"linked_cards,omitempty"`
	IdentificationReq bool         `json:"identification_requirement,omitempty"`
}

// SavedCard is the card part of a saved payment method.
type SavedCard struct {
	First6      string `json:"first6"`
	Last4       string `json:"last4"`
	ExpiryYear  string `json:"expiry_year"`
	ExpiryMonth string `json:"expiry_month"`
	CardType    string `json:"card_type"`
}

// PaymentMethod is a previously tokenized instrument usable for repeat payments.
type PaymentMethod struct {
	ID    string            `json:"id"`
	Type  PaymentMethodType `json:"type"`
	Saved bool              `json:"saved"`
	Title string            `json:"title,omitempty"`
	Card  *SavedCard        `json:"card,omitempty"`
}

// SavePaymentMethod is the merchant's policy for saving the instrument.
type SavePaymentMethod string

const (
	SavePaymentMethodOn          SavePaymentMethod = "on"
	SavePaymentMethodOff         SavePaymentMethod = "off"
	SavePaymentMethodUserSelects SavePaymentMethod = "user_selects"
)

// Resolve applies the policy to the payer's choice.
func (s SavePaymentMethod) Resolve(userChoice bool) bool {
	switch s {
	case SavePaymentMethodOn:
		return true
	case SavePaymentMethodOff:
		return false
	default:
		return userChoice
	}
}

// QueryValue is the value sent when listing options; nil lets the backend decide.
func (s SavePaymentMethod) QueryValue() *bool {
	var v bool
	switch s {
	case SavePaymentMethodOn:
		v = true
	case SavePaymentMethodOff:
		v = false
	default:
		return nil
	}
	return &v
}

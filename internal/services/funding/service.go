// Package funding accepts card deposits. Card details are validated and
// exchanged for a payment token, then the deposit is routed through the
// regular transaction pipeline so it gets risk-scored like everything else.
package funding

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vaultbank/internal/models"
	"vaultbank/internal/services/transaction"
)

// CardDetails is raw card input. It is never persisted.
type CardDetails struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVC         string `json:"cvc"`
}

// DepositRequest funds an account from a card.
type DepositRequest struct {
	Card       CardDetails `json:"card"`
	Amount     float64     `json:"amount"`
	DeviceInfo string      `json:"device_info,omitempty"`
	IPAddress  string      `json:"ip_address,omitempty"`
}

type Service interface {
	Deposit(ctx context.Context, userID uint, req *DepositRequest) (*models.Transaction, error)
}

type service struct {
	tokenizer    Tokenizer
	transactions transaction.Service
}

// NewService creates a new funding service
func NewService(tokenizer Tokenizer, transactions transaction.Service) Service {
	if tokenizer == nil {
		panic("tokenizer is required")
	}
	if transactions == nil {
		panic("transaction service is required")
	}
	return &service{tokenizer: tokenizer, transactions: transactions}
}

func (s *service) Deposit(ctx context.Context, userID uint, req *DepositRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := validateCard(&req.Card); err != nil {
		return nil, err
	}

	card, err := s.tokenizer.TokenizeCard(&req.Card)
	if err != nil {
		return nil, fmt.Errorf("card tokenization failed: %w", err)
	}

	return s.transactions.Create(ctx, userID, &transaction.CreateRequest{
		Type:        models.TransactionTypeDeposit,
		Amount:      req.Amount,
		Description: fmt.Sprintf("Card deposit (%s ****%s)", card.CardType, card.LastFour),
		DeviceInfo:  req.DeviceInfo,
		IPAddress:   req.IPAddress,
		Metadata: map[string]interface{}{
			"card_token": card.Token,
			"card_type":  card.CardType,
			"last_four":  card.LastFour,
		},
	})
}

func validateCard(card *CardDetails) error {
	if card.CardNumber == "" {
		return ErrCardNumberRequired
	}
	// Test tokens skip number validation.
	if strings.HasPrefix(card.CardNumber, "tok_") {
		return nil
	}
	if card.ExpiryMonth == "" || card.ExpiryYear == "" {
		return ErrExpiryRequired
	}

	month, err := strconv.Atoi(card.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidExpiry
	}
	year, err := strconv.Atoi(card.ExpiryYear)
	if err != nil {
		return ErrInvalidExpiry
	}

	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return ErrCardExpired
	}

	if !validCardNumber(card.CardNumber) {
		return ErrLuhnCheckFailed
	}
	return nil
}

// Luhn Algorithm: Used to validate credit card numbers
func validCardNumber(cardNumber string) bool {
	var sum int
	shouldDouble := false

	// Iterate over the digits of the card number from right to left
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit = digit * 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}

	// Card is valid if the sum is a multiple of 10
	return sum%10 == 0
}

package funding

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// TokenizedCard is the reference we keep instead of raw card data.
type TokenizedCard struct {
	Token    string
	CardType string
	LastFour string
}

// Tokenizer exchanges raw card details for a payment token.
type Tokenizer interface {
	TokenizeCard(card *CardDetails) (*TokenizedCard, error)
}

type stripeTokenizer struct{}

// NewTokenizer returns the Stripe-backed tokenizer. The Stripe secret key is
// read from STRIPE_SECRET_KEY.
func NewTokenizer() Tokenizer {
	return &stripeTokenizer{}
}

func (t *stripeTokenizer) TokenizeCard(card *CardDetails) (*TokenizedCard, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	// Test tokens pass straight through.
	if strings.HasPrefix(card.CardNumber, "tok_") {
		return &TokenizedCard{
			Token:    card.CardNumber,
			CardType: cardTypeFromToken(card.CardNumber),
			LastFour: "4242",
		}, nil
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &card.CardNumber,
			ExpMonth: &card.ExpiryMonth,
			ExpYear:  &card.ExpiryYear,
			CVC:      &card.CVC,
		},
	}

	stripeToken, err := token.New(params)
	if err != nil {
		log.Printf("Stripe tokenization error: %v", err)
		return nil, fmt.Errorf("stripe tokenization failed: %w", err)
	}

	return &TokenizedCard{
		Token:    stripeToken.ID,
		CardType: string(stripeToken.Card.Brand),
		LastFour: stripeToken.Card.Last4,
	}, nil
}

func cardTypeFromToken(tok string) string {
	switch tok {
	case "tok_visa", "tok_visa_debit":
		return "Visa"
	case "tok_mastercard", "tok_mastercard_2":
		return "Mastercard"
	case "tok_amex":
		return "American Express"
	case "tok_discover":
		return "Discover"
	default:
		return "Unknown"
	}
}

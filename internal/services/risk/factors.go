package risk

// MaxScore caps the total risk score.
const MaxScore = 100

// Amount tiers, evaluated highest-first.
const (
	amountTierHigh   = 50000.0
	amountTierMedium = 10000.0
	amountTierLow    = 5000.0
)

// Factors holds the named, independently computed contributions to a risk
// score. Every factor is non-negative, so the total is naturally >= 0.
type Factors struct {
	Amount             int
	Frequency          int
	RecipientFrequency int
	Pattern            int
	AccountAge         int
	RecipientNovelty   int
	DeviceNovelty      int
	IPNovelty          int
	TimeOfDay          int
	CustomRecipient    int
}

// Total sums all factors, clamped at MaxScore.
func (f Factors) Total() int {
	total := f.Amount + f.Frequency + f.RecipientFrequency + f.Pattern +
		f.AccountAge + f.RecipientNovelty + f.DeviceNovelty + f.IPNovelty +
		f.TimeOfDay + f.CustomRecipient
	if total > MaxScore {
		return MaxScore
	}
	return total
}

package domain

import "time"

// CreditConsent records whether a user has authorized use of their
// performance data for credit scoring. Exactly one record per user,
// created lazily with consent withheld.
type CreditConsent struct {
	UserID          string     `json:"user_id"`
	HasConsented    bool       `json:"has_consented"`
	ConsentedAt     *time.Time `json:"consented_at,omitempty"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
	DataExplanation []string   `json:"data_explanation"`
	NotUsed         []string   `json:"not_used"`
}

// DefaultDataExplanation lists the data sources used for scoring,
// disclosed to the user before they grant consent.
func DefaultDataExplanation() []string {
	return []string{
		"Connected social account metrics (followers, engagement)",
		"Content analysis results (categories, consistency)",
		"Affiliate performance (conversions, earnings history)",
		"Account age and verification status",
	}
}

// DefaultNotUsed lists the data sources explicitly excluded from scoring.
func DefaultNotUsed() []string {
	return []string{
		"Your personal messages or DMs",
		"Your browsing history",
		"Your location data",
		"Any data from non-connected platforms",
	}
}

// NewCreditConsent returns a consent record with consent withheld.
func NewCreditConsent(userID string) *CreditConsent {
	return &CreditConsent{
		UserID:          userID,
		HasConsented:    false,
		DataExplanation: DefaultDataExplanation(),
		NotUsed:         DefaultNotUsed(),
	}
}

// Grant marks consent as given. A previous revocation timestamp is cleared.
func (c *CreditConsent) Grant(now time.Time) {
	c.HasConsented = true
	c.ConsentedAt = &now
	c.RevokedAt = nil
}

// Revoke withdraws consent. ConsentedAt is kept as a record of when
// consent was originally given.
func (c *CreditConsent) Revoke(now time.Time) {
	c.HasConsented = false
	c.RevokedAt = &now
}

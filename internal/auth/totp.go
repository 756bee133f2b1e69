package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// CodeSecret is what a Verification row stores.
type CodeSecret struct {
	Secret    string
	Algorithm string
	Digits    int
	Period    uint
}

// CodeIssuer produces and checks one-time verification codes.
type CodeIssuer struct {
	issuer string
	period uint
}

func NewCodeIssuer(issuer string, periodSeconds uint) *CodeIssuer {
	if strings.TrimSpace(issuer) == "" {
		issuer = "Nautikos"
	}
	if periodSeconds == 0 {
		periodSeconds = 7200
	}
	return &CodeIssuer{issuer: issuer, period: periodSeconds}
}

// Period is how long a code stays valid.
func (ci *CodeIssuer) Period() time.Duration {
	return time.Duration(ci.period) * time.Second
}

// Generate creates a fresh secret for accountName and the current code.
func (ci *CodeIssuer) Generate(accountName string, now time.Time) (CodeSecret, string, error) {
	if strings.Contains(accountName, ":") {
		return CodeSecret{}, "", fmt.Errorf("account name cannot contain a colon character")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      ci.issuer,
		AccountName: accountName,
		Period:      ci.period,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
		SecretSize:  20,
	})
	if err != nil {
		return CodeSecret{}, "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	secret := CodeSecret{
		Secret:    key.Secret(),
		Algorithm: "SHA1",
		Digits:    int(otp.DigitsSix),
		Period:    ci.period,
	}

	code, err := totp.GenerateCodeCustom(secret.Secret, now, ci.opts(secret, 0))
	if err != nil {
		return CodeSecret{}, "", fmt.Errorf("failed to generate TOTP code: %w", err)
	}
	return secret, code, nil
}

// Validate checks code against secret at now. One period of skew is allowed
// so a code issued at the end of a window still works in the next.
func (ci *CodeIssuer) Validate(secret CodeSecret, code string, now time.Time) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, nil
	}
	valid, err := totp.ValidateCustom(code, secret.Secret, now, ci.opts(secret, 1))
	if err != nil {
		return false, fmt.Errorf("error during TOTP code validation: %w", err)
	}
	return valid, nil
}

func (ci *CodeIssuer) opts(secret CodeSecret, skew uint) totp.ValidateOpts {
	period := secret.Period
	if period == 0 {
		period = ci.period
	}
	return totp.ValidateOpts{
		Period:    period,
		Skew:      skew,
		Digits:    otp.Digits(secret.Digits),
		Algorithm: otp.AlgorithmSHA1,
	}
}

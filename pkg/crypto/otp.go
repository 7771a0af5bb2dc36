package crypto

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	defaultOTPIssuer  = "bantay"
	defaultOTPPeriod  = 30
	defaultOTPSkew    = 1
	otpSecretByteSize = 20 // 160 bits
)

// OTPCodec generates and verifies time-based one-time passwords against a
// shared secret. Pure with respect to wall-clock time: two calls within
// the same period window return the same code for the same secret.
type OTPCodec struct {
	Issuer string // label shown by authenticator apps
	Period uint   // window length in seconds
	Skew   uint   // adjacent windows accepted on verify (clock-skew tolerance)
}

func NewOTPCodec(issuer string) *OTPCodec {
	if issuer == "" {
		issuer = defaultOTPIssuer
	}
	return &OTPCodec{
		Issuer: issuer,
		Period: defaultOTPPeriod,
		Skew:   defaultOTPSkew,
	}
}

// NewSecret provisions a fresh base32 shared secret for the given account.
func (c *OTPCodec) NewSecret(account string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      c.Issuer,
		AccountName: account,
		Period:      c.Period,
		SecretSize:  otpSecretByteSize,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// GenerateCode derives the code for the current time window.
func (c *OTPCodec) GenerateCode(secret string) (string, error) {
	return totp.GenerateCodeCustom(secret, time.Now(), c.validateOpts())
}

// VerifyCode accepts codes from the current window plus Skew adjacent
// windows on either side; everything else is rejected.
func (c *OTPCodec) VerifyCode(code, secret string) bool {
	valid, err := totp.ValidateCustom(code, secret, time.Now(), c.validateOpts())
	return err == nil && valid
}

func (c *OTPCodec) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    c.Period,
		Skew:      c.Skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

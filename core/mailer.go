package core

import "fmt"

// Mailer hands a single message to the mail transport. Implementations may
// deliver asynchronously; the engine only observes whether the hand-off
// succeeded and never retries.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

func verificationEmail(code string) (subject, text, html string) {
	return "Verify your email",
		fmt.Sprintf("Your verification code is: %s", code),
		fmt.Sprintf("<p>Your verification code is: <strong>%s</strong></p>", code)
}

func loginCodeEmail(code string) (subject, text, html string) {
	return "Your login verification code",
		fmt.Sprintf("Your verification code is: %s", code),
		fmt.Sprintf("<p>Your verification code is: <strong>%s</strong></p>", code)
}

func resendCodeEmail(code string) (subject, text, html string) {
	return "Your new verification code",
		fmt.Sprintf("Your new verification code is: %s", code),
		fmt.Sprintf("<p>Your new verification code is: <strong>%s</strong></p>", code)
}

package notifications

import "fmt"

func PasswordResetMessage(appName, toEmail, code string) Message {
	return Message{
		ToEmail: toEmail,
		Subject: fmt.Sprintf("Password Reset Request | %s", appName),
		HTMLContent: fmt.Sprintf(`<h1>Reset password</h1>
<p>Use this code to reset your password</p>
<h2 style="color:red;">%s</h2>
<i>%s</i>`, code, appName),
		TextContent: fmt.Sprintf("Use this code to reset your password: %s", code),
	}
}

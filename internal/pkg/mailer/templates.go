package mailer

import "fmt"

// OTPTemplate 邮箱验证码邮件
func OTPTemplate(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>NamasteCart Email Verification</h2>
  <p>Dear User,</p>
  <p><strong>Your One-Time Password (OTP) is:</strong></p>
  <h1 style="letter-spacing: 2px;">%s</h1>
  <p>This OTP is valid for <strong>60 seconds</strong>. Please do not share it with anyone.</p>
  <br/>
  <p>Thank you,</p>
  <p><strong>NamasteCart Support Team</strong></p>
</div>`, code)
}

// PasswordResetTemplate 重置密码验证码邮件
func PasswordResetTemplate(code string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Password Reset Request</h2>
  <p>Dear User,</p>
  <p>We received a request to reset your account password associated with this email address.</p>
  <p><strong>Your One-Time Password (OTP) is:</strong></p>
  <h1 style="letter-spacing: 2px;">%s</h1>
  <p>This OTP is valid for <strong>60 seconds</strong>. Please do not share it with anyone.</p>
  <p>If you did not request this, you can safely ignore this email. Your account will remain secure.</p>
  <br/>
  <p>Thank you,</p>
  <p><strong>NamasteCart Support Team</strong></p>
</div>`, code)
}

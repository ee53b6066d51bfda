package utils

import (
	"fmt"
	"net/smtp"

	"lms/config"
)

func sendHTMLEmail(to, subjectLine, body string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	subject := fmt.Sprintf("Subject: %s\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n", subjectLine)
	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
}

// SendOTPEmail emails a verification OTP
func SendOTPEmail(otp, email string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">OTP Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone.</p>
				</div>
			</body>
		</html>
	`, otp)

	if err := sendHTMLEmail(email, "OTP Verification Code", body); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	fmt.Println("Email sent successfully to", email)
	return nil
}

// SendEnrollmentEmail sends an email notification when user enrolls in a course
func SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Successful!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You have successfully enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">Track your progress and complete all modules, quizzes and assignments to earn your certificate.</p>
				</div>
			</body>
		</html>
	`, userName, courseName)

	if err := sendHTMLEmail(email, "Course Enrollment Confirmation", body); err != nil {
		fmt.Println("Error sending enrollment email:", err)
		return err
	}
	fmt.Println("Enrollment email sent successfully to", email)
	return nil
}

// SendCertificateEmail sends certificate notification email with the
// certificate number and public verification code
func SendCertificateEmail(email, userName, courseName, certificateNumber, verificationCode string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Certificate of Completion</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Congratulations on completing the course:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
						<h2 style="color: #2196F3; margin: 0;">%s</h2>
						<p style="font-size: 14px; color: #666666; margin-top: 15px;">Verification code: %s</p>
					</div>
					<p style="font-size: 14px; color: #666666;">Anyone can verify the authenticity of this certificate with the verification code.</p>
				</div>
			</body>
		</html>
	`, userName, courseName, certificateNumber, verificationCode)

	if err := sendHTMLEmail(email, "Course Completion Certificate", body); err != nil {
		fmt.Println("Error sending certificate email:", err)
		return err
	}
	fmt.Println("Certificate email sent successfully to", email)
	return nil
}

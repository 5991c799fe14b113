package email

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/gen2brain/beeep"
)

func SendVerificationEmail(email string, pin string) error {
	if os.Getenv("GOENV") == "production" {
		subject := "Your Verification Pin"
		htmlBody := fmt.Sprintf("<h1>Verification Pin</h1><p>Your verification pin is: <strong>%s</strong></p>", pin)
		textBody := fmt.Sprintf("Your verification pin is: %s", pin)
		return sendEmailViaSES(email, subject, htmlBody, textBody)
	}

	if os.Getenv("GOENV") == "development" {
		// copy the pin to the clipboard and notify instead of sending
		if err := clipboard.WriteAll(pin); err != nil {
			return fmt.Errorf("error copying pin to clipboard in dev: %v", err)
		}

		err := beeep.Notify("Verification Pin", fmt.Sprintf("Verification pin %s copied to clipboard for %s", pin, email), "")
		if err != nil {
			return fmt.Errorf("error sending notification in dev: %v", err)
		}
	}

	return nil
}

func sendEmailViaSES(recipient, subject, htmlBody, textBody string) error {
	sess, err := session.NewSession()
	if err != nil {
		return fmt.Errorf("error creating AWS session: %v", err)
	}

	svc := ses.New(sess)

	fromAddress := os.Getenv("SES_FROM_ADDRESS")
	if fromAddress == "" {
		fromAddress = "noreply@vibe.social"
	}

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{
				aws.String(recipient),
			},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(htmlBody),
				},
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(textBody),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(fromAddress),
	}

	_, err = svc.SendEmail(input)

	return err
}

// Package notify sends submission confirmations to applicants by email
// and SMS.
package notify

import (
	"context"
	"fmt"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// EmailSender matches the SES client wrapper.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender matches the SNS client wrapper.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Notifier struct {
	email  EmailSender
	sms    SMSSender
	sender string
	logger logger.Logger
}

func NewNotifier(email EmailSender, sms SMSSender, sender string, log logger.Logger) *Notifier {
	return &Notifier{
		email:  email,
		sms:    sms,
		sender: sender,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// SendConfirmationEmail emails the applicant their application reference.
func (n *Notifier) SendConfirmationEmail(ctx context.Context, to, applicantName, applicationID string) error {
	subject := "Your rental application was received"
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your rental application. Your reference number is %s.\n\nWe will follow up once screening completes.\n",
		applicantName, applicationID)

	input := &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := n.email.SendEmail(ctx, input); err != nil {
		return errors.NewNotificationSendError(fmt.Sprintf("email to %s: %v", to, err))
	}

	n.logger.Info("confirmation email sent", map[string]interface{}{
		"to":            to,
		"applicationId": applicationID,
	})
	return nil
}

// SendConfirmationSMS texts the applicant their application reference.
// Phone must already be in E.164 form.
func (n *Notifier) SendConfirmationSMS(ctx context.Context, phone, applicationID string) error {
	message := fmt.Sprintf("Your rental application %s was received. We'll text you when screening completes.", applicationID)

	input := &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	}

	if _, err := n.sms.Publish(ctx, input); err != nil {
		return errors.NewNotificationSendError(fmt.Sprintf("sms to %s: %v", phone, err))
	}

	n.logger.Info("confirmation sms sent", map[string]interface{}{
		"applicationId": applicationID,
	})
	return nil
}

package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// sesAPI is the part of the SES client the sender uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	client sesAPI
}

func NewSESSender(ctx context.Context, region string) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESSender{client: ses.NewFromConfig(cfg)}, nil
}

func (s *SESSender) Send(ctx context.Context, mail Mail) error {
	from := mail.FromEmail
	if mail.FromName != "" {
		from = fmt.Sprintf("%q <%s>", mail.FromName, mail.FromEmail)
	}
	input := &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{mail.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(mail.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(mail.HTML), Charset: aws.String("UTF-8")},
			},
		},
	}
	if mail.CustomID != "" {
		input.Tags = []types.MessageTag{{Name: aws.String("custom_id"), Value: aws.String(mail.CustomID)}}
	}
	_, err := s.client.SendEmail(ctx, input)
	return err
}

// Package aws holds the SES and SNS plumbing used to deliver analysis
// reports.
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const charsetUTF8 = "UTF-8"

// Clients bundles the SDK clients built from one shared configuration.
type Clients struct {
	SES *ses.Client
	SNS *sns.Client
}

// NewClients loads the default credential chain for region.
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Clients{
		SES: ses.NewFromConfig(cfg),
		SNS: sns.NewFromConfig(cfg),
	}, nil
}

// Email is a multipart message with a plain-text and an HTML body.
type Email struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// SendEmailInput builds the SES request. The HTML part is omitted when empty.
func (e Email) SendEmailInput() *ses.SendEmailInput {
	body := &types.Body{
		Text: &types.Content{Data: awssdk.String(e.Text), Charset: awssdk.String(charsetUTF8)},
	}
	if e.HTML != "" {
		body.Html = &types.Content{Data: awssdk.String(e.HTML), Charset: awssdk.String(charsetUTF8)}
	}
	return &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: e.To},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(e.Subject), Charset: awssdk.String(charsetUTF8)},
			Body:    body,
		},
		Source: awssdk.String(e.From),
	}
}

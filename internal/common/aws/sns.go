package aws

import (
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// maxSubjectLength is the SNS limit for email-protocol subjects.
const maxSubjectLength = 100

// Alert is a message published to an SNS topic.
type Alert struct {
	TopicARN   string
	Subject    string
	Message    string
	Attributes map[string]string
}

// PublishInput builds the SNS request. Subjects are cut to the SNS limit
// on a rune boundary.
func (a Alert) PublishInput() *sns.PublishInput {
	in := &sns.PublishInput{
		TopicArn: awssdk.String(a.TopicARN),
		Message:  awssdk.String(a.Message),
	}
	if a.Subject != "" {
		subject := []rune(a.Subject)
		if len(subject) > maxSubjectLength {
			subject = subject[:maxSubjectLength]
		}
		in.Subject = awssdk.String(string(subject))
	}
	if len(a.Attributes) > 0 {
		in.MessageAttributes = make(map[string]types.MessageAttributeValue, len(a.Attributes))
		for k, v := range a.Attributes {
			in.MessageAttributes[k] = types.MessageAttributeValue{
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(v),
			}
		}
	}
	return in
}

package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

// SlackChannel posts complaint alerts to an incoming-webhook URL using Block
// Kit formatting.
type SlackChannel struct {
	webhookURL string
	httpClient *http.Client
}

func NewSlackChannel(webhookURL string, timeout time.Duration) *SlackChannel {
	return &SlackChannel{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Fields   []slackText `json:"fields,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type SlackMessage struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

func (c *SlackChannel) NotifyComplaint(ctx context.Context, details *domain.ReviewDetails) error {
	return postJSON(ctx, c.httpClient, c.webhookURL, "operator webhook", ComplaintMessage(details), nil)
}

// ComplaintMessage renders the operator alert for a complaint.
func ComplaintMessage(d *domain.ReviewDetails) SlackMessage {
	body := d.Text()
	if body == "" {
		body = "_No review text provided_"
	}

	return SlackMessage{
		Text: "🚨 New Customer Complaint Received",
		Blocks: []slackBlock{
			{
				Type: "header",
				Text: &slackText{Type: "plain_text", Text: "🚨 New Customer Complaint"},
			},
			{
				Type: "section",
				Fields: []slackText{
					mrkdwn("*Service:*\n" + d.ServiceTitle),
					mrkdwn(fmt.Sprintf("*Rating:*\n%s (%d/5)", d.Stars(), d.Rating)),
					mrkdwn("*Customer:*\n" + d.CustomerLabel()),
					mrkdwn("*Date:*\n" + formatTime(d.CreatedAt)),
				},
			},
			{
				Type: "section",
				Text: &slackText{Type: "mrkdwn", Text: "*Review:*\n" + body},
			},
			{Type: "divider"},
			{
				Type:     "context",
				Elements: []slackText{mrkdwn("Review ID: " + d.ID)},
			},
		},
	}
}

func mrkdwn(text string) slackText {
	return slackText{Type: "mrkdwn", Text: text}
}

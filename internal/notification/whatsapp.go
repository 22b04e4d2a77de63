package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cantinazo/api/internal/config"
	"github.com/cantinazo/api/internal/service"
)

const defaultAPIBase = "https://api.twilio.com"

// WhatsAppNotifier sends messages through the Twilio WhatsApp API.
// It implements service.Notifier.
type WhatsAppNotifier struct {
	accountSID string
	authToken  string
	from       string
	apiBase    string
	client     *http.Client
}

func NewWhatsAppNotifier(conf *config.TwilioConfig) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		accountSID: conf.AccountSID,
		authToken:  conf.AuthToken,
		from:       conf.WhatsAppFrom,
		apiBase:    defaultAPIBase,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (n *WhatsAppNotifier) Send(ctx context.Context, toPhoneE164, body string) (string, error) {
	form := url.Values{}
	form.Set("To", withWhatsAppPrefix(toPhoneE164))
	form.Set("From", withWhatsAppPrefix(n.from))
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", n.apiBase, n.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.SetBasicAuth(n.accountSID, n.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: twilio returned status %d", service.ErrDeliveryFailed, resp.StatusCode)
	}

	var message struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&message); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", service.ErrDeliveryFailed, err)
	}

	return message.SID, nil
}

func withWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

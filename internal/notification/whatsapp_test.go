package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantinazo/api/internal/config"
	"github.com/cantinazo/api/internal/service"
)

func testNotifier(serverURL string) *WhatsAppNotifier {
	n := NewWhatsAppNotifier(&config.TwilioConfig{
		AccountSID:   "AC123",
		AuthToken:    "secret",
		WhatsAppFrom: "+14155238886",
	})
	n.apiBase = serverURL

	return n
}

func TestSend(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"To":   r.PostFormValue("To"),
			"From": r.PostFormValue("From"),
			"Body": r.PostFormValue("Body"),
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid": "SM42"}`))
	}))
	defer srv.Close()

	n := testNotifier(srv.URL)

	sid, err := n.Send(context.Background(), "+584121234567", "Nueva orden #1")
	require.NoError(t, err)
	assert.Equal(t, "SM42", sid)
	assert.Equal(t, "whatsapp:+584121234567", gotForm["To"])
	assert.Equal(t, "whatsapp:+14155238886", gotForm["From"])
	assert.Equal(t, "Nueva orden #1", gotForm["Body"])
}

func TestSend_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := testNotifier(srv.URL)

	_, err := n.Send(context.Background(), "+584121234567", "hola")
	assert.ErrorIs(t, err, service.ErrDeliveryFailed)
}

func TestWithWhatsAppPrefix(t *testing.T) {
	assert.Equal(t, "whatsapp:+58412", withWhatsAppPrefix("+58412"))
	assert.Equal(t, "whatsapp:+58412", withWhatsAppPrefix("whatsapp:+58412"))
}

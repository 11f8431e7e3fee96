package repository

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiqso/odoo-bridge/internal/config"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
)

// odooStub is a scripted XML-RPC endpoint: authenticate always succeeds,
// execute_kw answers from the response script in order.
type odooStub struct {
	mu        sync.Mutex
	execs     int
	responses []string
}

func (s *odooStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "text/xml")

	if strings.Contains(string(body), "<methodName>authenticate</methodName>") {
		fmt.Fprint(w, stubResult("<int>2</int>"))
		return
	}
	s.mu.Lock()
	n := s.execs
	s.execs++
	s.mu.Unlock()
	if n < len(s.responses) {
		fmt.Fprint(w, s.responses[n])
		return
	}
	fmt.Fprint(w, stubResult("<boolean>1</boolean>"))
}

func stubResult(value string) string {
	return `<?xml version="1.0"?><methodResponse><params><param><value>` +
		value + `</value></param></params></methodResponse>`
}

func stubFault(code int, message string) string {
	return fmt.Sprintf(`<?xml version="1.0"?><methodResponse><fault><value><struct>`+
		`<member><name>faultCode</name><value><int>%d</int></value></member>`+
		`<member><name>faultString</name><value><string>%s</string></value></member>`+
		`</struct></value></fault></methodResponse>`, code, message)
}

// newStubClient starts a scripted endpoint and returns a client wired to it.
func newStubClient(t *testing.T, responses ...string) *odoo.Client {
	t.Helper()
	server := httptest.NewServer(&odooStub{responses: responses})
	t.Cleanup(server.Close)

	client, err := odoo.NewClient(config.OdooConfig{
		URL:      server.URL,
		Database: "test",
		Username: "admin",
		APIKey:   "secret",
	})
	require.NoError(t, err)
	return client
}

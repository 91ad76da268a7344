package handlers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	applog "trapbite/internal/log"
)

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	ReqID  string         `json:"req_id"`
	Status int            `json:"status"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

// captureLogs points the process logger at a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	restore := applog.SetOutput(w)
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func find(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}

func TestLog_AuthEvents(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	entries := captureLogs(t, func() {
		do(t, app, jsonReq("POST", "/api/auth/login", map[string]string{"email": adminEmail, "password": "bad"}), "")
		login(t, app)
		do(t, app, jsonReq("GET", "/api/sales", nil), "")
	})

	fail := find(entries, "auth.login.fail")
	if fail == nil || fail.Kind != "security" || fail.Level != "warn" {
		t.Fatalf("login failure not logged as security event: %+v", entries)
	}
	if fail.Fields["email"] != adminEmail {
		t.Fatalf("email missing from failure log: %+v", fail)
	}
	if ok := find(entries, "auth.login.success"); ok == nil || ok.Kind != "audit" {
		t.Fatalf("login success not audited: %+v", entries)
	}
	if denied := find(entries, "access.denied"); denied == nil {
		t.Fatalf("gate rejection not logged: %+v", entries)
	}
	for _, e := range entries {
		if _, ok := e.Fields["password"]; ok {
			t.Fatalf("password logged: %+v", e)
		}
	}
}

func TestLog_AccessLine(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	entries := captureLogs(t, func() {
		do(t, app, jsonReq("GET", "/healthz", nil), "")
	})
	acc := find(entries, "http.access")
	if acc == nil || acc.Status != 200 || acc.ReqID == "" {
		t.Fatalf("access line missing or incomplete: %+v", entries)
	}
}

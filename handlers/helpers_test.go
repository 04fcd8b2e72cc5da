// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/directory"
	"github.com/danielhkuo/council-ballot/session"
	"github.com/danielhkuo/council-ballot/testutil"
)

type testEnv struct {
	api      *testutil.FakeElectionAPI
	cfg      cliparse.Config
	store    *directory.Store
	sessions *session.Manager
	cookie   *http.Cookie
}

// newTestEnv starts a fake election API with candidateCount candidates and
// logs in a demo voter
func newTestEnv(t *testing.T, candidateCount int) *testEnv {
	t.Helper()

	api := testutil.NewFakeElectionAPI(t, candidateCount)
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	cfg := testutil.GetTestConfig(api.URL())
	store := directory.NewStore(conn)
	env := &testEnv{
		api:      api,
		cfg:      cfg,
		store:    store,
		sessions: session.NewManager(store, session.NewReceiptStore(conn), cfg.SessionTTL),
	}
	env.cookie = env.login(t)
	return env
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	NewSessionHandler(e.sessions, e.cfg).DemoLogin(w, httptest.NewRequest("POST", "/session/demo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Demo login failed: %d - %s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("Expected session cookie")
	return nil
}

// request builds a request carrying the env's session cookie
func (e *testEnv) request(method, path string, body interface{}) *http.Request {
	req := testutil.MakeRequest(method, path, body, nil)
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	return req
}

// toggle performs a ballot gesture through the handler
func (e *testEnv) toggle(t *testing.T, kind string, candidateID int) *httptest.ResponseRecorder {
	t.Helper()

	h := NewBallotHandler(e.sessions, e.cfg)
	id := strconv.Itoa(candidateID)
	req := e.request("POST", "/ballot/"+kind+"/"+id, nil)
	req.SetPathValue("candidate", id)
	w := httptest.NewRecorder()

	if kind == "council" {
		h.ToggleCouncil(w, req)
	} else {
		h.ToggleExecutive(w, req)
	}
	return w
}

// fillBallot selects candidates 1..15 for council and 1..7 for executive
func (e *testEnv) fillBallot(t *testing.T) {
	t.Helper()
	for i := 1; i <= 15; i++ {
		if w := e.toggle(t, "council", i); w.Code != http.StatusOK {
			t.Fatalf("council %d: %d - %s", i, w.Code, w.Body.String())
		}
	}
	for i := 1; i <= 7; i++ {
		if w := e.toggle(t, "executive", i); w.Code != http.StatusOK {
			t.Fatalf("executive %d: %d - %s", i, w.Code, w.Body.String())
		}
	}
}

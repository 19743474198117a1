package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "ana@example.com"
	testPassword = "s3nha-forte"
	testToken    = "test-token"
)

func TestVersionNeedsNoConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SUBS_LOG_LEVEL", "not-a-level")

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestDashboardRequiresSignIn(t *testing.T) {
	home, backend := newCLIEnv(t)

	_, _, err := executeCLI(t, home, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
	assert.Zero(t, backend.requests("GET /api/subscriptions"))
}

func TestLoginThenDashboard(t *testing.T) {
	home, backend := newCLIEnv(t)
	backend.seed("Netflix", "39.90", daysFromNow(3))
	backend.seed("Spotify", "21.90", daysFromNow(-2))
	backend.seed("iCloud", "4.90", daysFromNow(20))

	stdout, _, err := executeCLIWithInput(t, home, testPassword+"\n", "login", "--email", testEmail)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as "+testEmail)

	stdout, _, err = executeCLI(t, home, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total mensal: R$ 66,70")
	assert.Contains(t, stdout, "Vencendo em 7 dias: 1")
	assert.Contains(t, stdout, "#1 Netflix [Vence em breve]")
	assert.Contains(t, stdout, "Vence em 3 dias")
	assert.Contains(t, stdout, "#2 Spotify [Vencido]")
	assert.Contains(t, stdout, "Venceu há 2 dias")
	assert.Contains(t, stdout, "#3 iCloud [Ativo]")
}

func TestLoginPromptsForEmail(t *testing.T) {
	home, _ := newCLIEnv(t)

	stdout, stderr, err := executeCLIWithInput(t, home, testEmail+"\n"+testPassword+"\n", "login")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Email: ")
	assert.Contains(t, stderr, "Password: ")
	assert.Contains(t, stdout, "Signed in as "+testEmail)

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "email:     "+testEmail)
	assert.Contains(t, stdout, "expires:   never")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	home, _ := newCLIEnv(t)

	_, _, err := executeCLIWithInput(t, home, "wrong\n", "login", "--email", testEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Credenciais inválidas")

	stdout, _, err := executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestRegisterSignsIn(t *testing.T) {
	home, backend := newCLIEnv(t)

	stdout, _, err := executeCLIWithInput(t, home, "novo-segredo\nnovo-segredo\n",
		"register", "--name", "Bia", "--email", "bia@example.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Account created, signed in as bia@example.com")
	assert.Equal(t, 1, backend.requests("POST /api/register"))

	stdout, _, err = executeCLI(t, home, "whoami", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"State": "authenticated"`)
	assert.Contains(t, stdout, `"Email": "bia@example.com"`)
}

func TestRegisterPasswordMismatchNeverCallsBackend(t *testing.T) {
	home, backend := newCLIEnv(t)

	_, _, err := executeCLIWithInput(t, home, "um\ndois\n",
		"register", "--name", "Bia", "--email", "bia@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password confirmation does not match")
	assert.Zero(t, backend.requests("POST /api/register"))
}

func TestAddShowEditDelete(t *testing.T) {
	home, backend := newCLIEnv(t)
	signIn(t, home)

	renewal := daysFromNow(10)
	stdout, _, err := executeCLI(t, home,
		"add",
		"--service", "Netflix",
		"--price", "39.90",
		"--renewal-date", renewal,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added Netflix")
	assert.Contains(t, stdout, "#1 Netflix [Ativo]")

	created := backend.get(1)
	assert.Equal(t, 1, created.RenewalPeriodValue)
	assert.Equal(t, "month", created.RenewalPeriodUnit)
	assert.Equal(t, 7, created.NotifyBeforeValue)
	assert.Equal(t, "day", created.NotifyBeforeUnit)

	stdout, _, err = executeCLI(t, home, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Netflix [Ativo]")
	assert.Contains(t, stdout, "10 dias")
	assert.Contains(t, stdout, "R$ 39,90")
	assert.Contains(t, stdout, "7 dias antes")

	stdout, _, err = executeCLI(t, home, "edit", "1", "--price", "44.90", "--period-unit", "YEAR")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Updated Netflix")
	assert.Contains(t, stdout, "Total mensal: R$ 44,90")

	updated := backend.get(1)
	assert.Equal(t, "44.90", updated.Price)
	assert.Equal(t, "year", updated.RenewalPeriodUnit)
	assert.Equal(t, renewal, updated.RenewalDate)
	assert.Equal(t, "Netflix", updated.Service.Name)

	stdout, _, err = executeCLI(t, home, "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted subscription #1")
	assert.Contains(t, stdout, "Nenhuma assinatura cadastrada.")
	assert.Equal(t, 1, backend.requests("DELETE /api/subscriptions/{id}"))
}

func TestDeleteAbortsWithoutConfirmation(t *testing.T) {
	home, backend := newCLIEnv(t)
	backend.seed("Netflix", "39.90", daysFromNow(10))
	signIn(t, home)

	stdout, stderr, err := executeCLIWithInput(t, home, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Delete subscription #1? [y/N]: ")
	assert.Contains(t, stdout, "Aborted")
	assert.Zero(t, backend.requests("DELETE /api/subscriptions/{id}"))
}

func TestEditWithoutFlagsFails(t *testing.T) {
	home, _ := newCLIEnv(t)
	signIn(t, home)

	_, _, err := executeCLI(t, home, "edit", "1")
	require.ErrorIs(t, err, errNothingToUpdate)
}

func TestAddValidationErrorsNeverReachBackend(t *testing.T) {
	home, backend := newCLIEnv(t)
	signIn(t, home)

	_, _, err := executeCLI(t, home,
		"add",
		"--service", "Netflix",
		"--price", "abc",
		"--renewal-date", "31/12/2025",
		"--period-unit", "fortnight",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
	assert.Contains(t, err.Error(), "invalid date format")
	assert.Contains(t, err.Error(), "renewal_period_unit must be one of day, week, month, year")
	assert.Zero(t, backend.requests("POST /api/subscriptions"))
}

func TestShowUnknownSubscription(t *testing.T) {
	home, _ := newCLIEnv(t)
	signIn(t, home)

	_, _, err := executeCLI(t, home, "show", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription not found")

	_, _, err = executeCLI(t, home, "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription id must be a positive number")
}

func TestDashboardJSONOutput(t *testing.T) {
	home, backend := newCLIEnv(t)
	backend.seed("Netflix", "39.90", daysFromNow(3))
	backend.seed("Legacy", "oops", daysFromNow(30))
	signIn(t, home)

	stdout, stderr, err := executeCLI(t, home, "ls", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))
	assert.NotContains(t, stderr, loadingLabel)

	var payload struct {
		Subscriptions []struct {
			Subscription struct {
				ID int
			}
			Status *struct {
				DaysUntilRenewal int
				Category         string
				Tier             string
				DueText          string
				Progress         *float64
			}
		}
		Summary struct {
			TotalMonthly      string
			ExpiringSoonCount int
			Warnings          []struct {
				SubscriptionID int
				Message        string
			}
		}
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))

	require.Len(t, payload.Subscriptions, 2)
	require.NotNil(t, payload.Subscriptions[0].Status)
	assert.Equal(t, 3, payload.Subscriptions[0].Status.DaysUntilRenewal)
	assert.Equal(t, "due_imminently", payload.Subscriptions[0].Status.Category)
	assert.Equal(t, "danger", payload.Subscriptions[0].Status.Tier)
	assert.Equal(t, "Vence em 3 dias", payload.Subscriptions[0].Status.DueText)
	require.NotNil(t, payload.Subscriptions[0].Status.Progress)
	assert.InDelta(t, 0.1, *payload.Subscriptions[0].Status.Progress, 1e-9)
	assert.Equal(t, "39.9", payload.Summary.TotalMonthly)
	assert.Equal(t, 1, payload.Summary.ExpiringSoonCount)
	require.Len(t, payload.Summary.Warnings, 1)
	assert.Equal(t, 2, payload.Summary.Warnings[0].SubscriptionID)
	assert.Contains(t, payload.Summary.Warnings[0].Message, "invalid price")
}

func TestDashboardPrintsSummaryWarnings(t *testing.T) {
	home, backend := newCLIEnv(t)
	backend.seed("Legacy", "oops", daysFromNow(30))
	signIn(t, home)

	stdout, stderr, err := executeCLI(t, home, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total mensal: R$ 0,00")
	assert.Contains(t, stderr, "! subscription 1 (Legacy): invalid price")
}

func TestLogoutClearsSession(t *testing.T) {
	home, backend := newCLIEnv(t)
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out")
	assert.Equal(t, 1, backend.requests("POST /api/logout"))

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")

	_, _, err = executeCLI(t, home, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestProfile(t *testing.T) {
	home, _ := newCLIEnv(t)
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "profile")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name:   Ana")
	assert.Contains(t, stdout, "email:  "+testEmail)
}

func TestExpiredServerTokenSurfacesNotAuthenticated(t *testing.T) {
	home, backend := newCLIEnv(t)
	signIn(t, home)
	backend.revoke()

	_, _, err := executeCLI(t, home, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthenticated.")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func signIn(t *testing.T, home string) {
	t.Helper()

	_, _, err := executeCLIWithInput(t, home, testPassword+"\n", "login", "--email", testEmail)
	require.NoError(t, err)
}

func daysFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func newCLIEnv(t *testing.T) (string, *fakeBackend) {
	t.Helper()

	home := t.TempDir()
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	t.Setenv("HOME", home)
	t.Setenv("SUBS_API_BASE_URL", server.URL+"/api")
	t.Setenv("SUBS_SECRETS_BACKEND", "file")

	return home, backend
}

type fakeService struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type fakeSubscription struct {
	ID                 int        `json:"id"`
	Price              string     `json:"price"`
	RenewalDate        string     `json:"renewal_date"`
	RenewalPeriodValue int        `json:"renewal_period_value"`
	RenewalPeriodUnit  string     `json:"renewal_period_unit"`
	NotifyBeforeValue  int        `json:"notify_before_value"`
	NotifyBeforeUnit   string     `json:"notify_before_unit"`
	Service            fakeService `json:"service"`
}

type fakeBackend struct {
	mu      sync.Mutex
	token   string
	nextID  int
	subs    map[int]fakeSubscription
	order   []int
	counter map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		token:   testToken,
		nextID:  1,
		subs:    map[int]fakeSubscription{},
		counter: map[string]int{},
	}
}

func (b *fakeBackend) seed(name, price, renewal string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.insertLocked(fakeSubscription{
		Price:              price,
		RenewalDate:        renewal,
		RenewalPeriodValue: 1,
		RenewalPeriodUnit:  "month",
		NotifyBeforeValue:  7,
		NotifyBeforeUnit:   "day",
		Service:            fakeService{Name: name},
	})
}

func (b *fakeBackend) insertLocked(sub fakeSubscription) {
	sub.ID = b.nextID
	sub.Service.ID = b.nextID
	b.nextID++
	b.subs[sub.ID] = sub
	b.order = append(b.order, sub.ID)
}

func (b *fakeBackend) get(id int) fakeSubscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subs[id]
}

func (b *fakeBackend) requests(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counter[pattern]
}

func (b *fakeBackend) revoke() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = "rotated"
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", b.count("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != testEmail || req.Password != testPassword {
			writeFakeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Credenciais inválidas"})
			return
		}
		writeFakeJSON(w, http.StatusOK, map[string]any{"access_token": testToken, "token_type": "Bearer"})
	}))

	mux.HandleFunc("POST /api/register", b.count("POST /api/register", func(w http.ResponseWriter, _ *http.Request) {
		writeFakeJSON(w, http.StatusCreated, map[string]any{"token": testToken})
	}))

	mux.HandleFunc("POST /api/logout", b.authed("POST /api/logout", func(w http.ResponseWriter, _ *http.Request) {
		writeFakeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
	}))

	mux.HandleFunc("GET /api/user", b.authed("GET /api/user", func(w http.ResponseWriter, _ *http.Request) {
		writeFakeJSON(w, http.StatusOK, map[string]any{
			"id":         1,
			"name":       "Ana",
			"email":      testEmail,
			"created_at": "2024-06-01T10:00:00.000000Z",
		})
	}))

	mux.HandleFunc("GET /api/subscriptions", b.authed("GET /api/subscriptions", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		list := make([]fakeSubscription, 0, len(b.order))
		for _, id := range b.order {
			list = append(list, b.subs[id])
		}
		b.mu.Unlock()

		writeFakeJSON(w, http.StatusOK, map[string]any{"data": list})
	}))

	mux.HandleFunc("POST /api/subscriptions", b.authed("POST /api/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		var sub fakeSubscription
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeFakeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": err.Error()})
			return
		}

		b.mu.Lock()
		b.insertLocked(sub)
		b.mu.Unlock()

		writeFakeJSON(w, http.StatusCreated, map[string]any{"message": "created"})
	}))

	mux.HandleFunc("GET /api/subscriptions/{id}", b.authed("GET /api/subscriptions/{id}", func(w http.ResponseWriter, r *http.Request) {
		sub, ok := b.lookup(r)
		if !ok {
			writeFakeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
			return
		}
		writeFakeJSON(w, http.StatusOK, map[string]any{"data": sub})
	}))

	mux.HandleFunc("PUT /api/subscriptions/{id}", b.authed("PUT /api/subscriptions/{id}", func(w http.ResponseWriter, r *http.Request) {
		current, ok := b.lookup(r)
		if !ok {
			writeFakeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
			return
		}

		var sub fakeSubscription
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeFakeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": err.Error()})
			return
		}
		sub.ID = current.ID
		sub.Service.ID = current.Service.ID

		b.mu.Lock()
		b.subs[sub.ID] = sub
		b.mu.Unlock()

		writeFakeJSON(w, http.StatusOK, map[string]any{"data": sub})
	}))

	mux.HandleFunc("DELETE /api/subscriptions/{id}", b.authed("DELETE /api/subscriptions/{id}", func(w http.ResponseWriter, r *http.Request) {
		sub, ok := b.lookup(r)
		if !ok {
			writeFakeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
			return
		}

		b.mu.Lock()
		delete(b.subs, sub.ID)
		order := b.order[:0]
		for _, id := range b.order {
			if id != sub.ID {
				order = append(order, id)
			}
		}
		b.order = order
		b.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))

	return mux
}

func (b *fakeBackend) count(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.counter[pattern]++
		b.mu.Unlock()
		next(w, r)
	}
}

func (b *fakeBackend) authed(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return b.count(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		want := "Bearer " + b.token
		b.mu.Unlock()

		if r.Header.Get("Authorization") != want {
			writeFakeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
			return
		}
		next(w, r)
	})
}

func (b *fakeBackend) lookup(r *http.Request) (fakeSubscription, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return fakeSubscription{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.subs[id]
	return sub, ok
}

func writeFakeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

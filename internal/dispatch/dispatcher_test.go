package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"quiz-engine/internal/domain"
	"quiz-engine/internal/question"
)

type fixedIDs struct{}

func (fixedIDs) NewID() string { return "abc12345" }

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func addition(t *testing.T, a, b int) question.Question {
	t.Helper()
	v, err := question.Lookup(question.Addition)
	require.NoError(t, err)
	env := question.Env{IDs: fixedIDs{}, Rand: question.NewRand(1)}
	q, err := v.New(context.Background(), env, nil, &question.Params{Numbers: []int{a, b}})
	require.NoError(t, err)
	return q
}

func newPlayer(t *testing.T, endpoint string) *domain.Player {
	t.Helper()
	p, err := domain.NewPlayer("p1", "alice", endpoint)
	require.NoError(t, err)
	return p
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func answering(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestDispatchClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		result domain.Result
		points int
		delay  time.Duration
	}{
		{"correct", http.StatusOK, "7", domain.ResultCorrect, 10, 5 * time.Second},
		{"correct with whitespace", http.StatusOK, " 7\n", domain.ResultCorrect, 10, 5 * time.Second},
		{"wrong", http.StatusOK, "8", domain.ResultWrong, 0, 10 * time.Second},
		{"leading zero is wrong", http.StatusOK, "07", domain.ResultWrong, 0, 10 * time.Second},
		{"created counts as success", http.StatusCreated, "7", domain.ResultCorrect, 10, 5 * time.Second},
		{"server error", http.StatusInternalServerError, "7", domain.ResultErrorResponse, 0, 20 * time.Second},
		{"not found", http.StatusNotFound, "", domain.ResultErrorResponse, 0, 20 * time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := answering(tc.status, tc.body)
			defer srv.Close()

			player := newPlayer(t, srv.URL)
			d := New(WithLogger(quietLogger()))
			outcome, err := d.Dispatch(context.Background(), addition(t, 3, 4), player)
			require.NoError(t, err)
			require.Equal(t, tc.result, outcome.Result)
			require.Equal(t, tc.points, outcome.Points)
			require.Equal(t, tc.delay, outcome.Delay)
			require.Equal(t, tc.status, outcome.Status)

			lines := player.Log()
			require.Len(t, lines, 1)
			require.Equal(t, "abc12345", lines[0].QuestionID)
			require.Equal(t, tc.result, lines[0].Result)
			if tc.result == domain.ResultErrorResponse {
				require.Empty(t, lines[0].Answer)
			}
		})
	}
}

func TestDispatchConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	player := newPlayer(t, "http://"+addr)
	outcome, err := New(WithLogger(quietLogger())).Dispatch(context.Background(), addition(t, 3, 4), player)
	require.NoError(t, err)
	require.Equal(t, domain.ResultNoServerResponse, outcome.Result)
	require.Equal(t, 20*time.Second, outcome.Delay)
	require.Equal(t, 0, outcome.Points)
	require.Len(t, player.Log(), 1)
}

func TestDispatchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	player := newPlayer(t, srv.URL)
	d := New(WithTimeout(50*time.Millisecond), WithLogger(quietLogger()))
	outcome, err := d.Dispatch(context.Background(), addition(t, 3, 4), player)
	require.NoError(t, err)
	require.Equal(t, domain.ResultNoServerResponse, outcome.Result)
	require.Len(t, player.Log(), 1)
}

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (failingBody) Close() error { return nil }

func TestDispatchMalformedResponseIsNetworkFailure(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: failingBody{}, Header: make(http.Header)}, nil
	})}
	player := newPlayer(t, "http://player.test")
	outcome, err := New(WithHTTPClient(client), WithLogger(quietLogger())).Dispatch(context.Background(), addition(t, 3, 4), player)
	require.NoError(t, err)
	require.Equal(t, domain.ResultNoServerResponse, outcome.Result)
	require.Equal(t, 0, outcome.Status)
}

func TestDispatchSendsRenderedQuestion(t *testing.T) {
	var seen url.Values
	client := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		seen = r.URL.Query()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader([]byte("7"))),
			Header:     make(http.Header),
		}, nil
	})}
	player := newPlayer(t, "http://player.test/answer?team=blue")
	_, err := New(WithHTTPClient(client), WithLogger(quietLogger())).Dispatch(context.Background(), addition(t, 3, 4), player)
	require.NoError(t, err)
	require.Equal(t, "abc12345: what is 3 plus 4", seen.Get("q"))
	require.Equal(t, "blue", seen.Get("team"))
}

func TestDispatchAbandonedOnCancel(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	player := newPlayer(t, srv.URL)
	_, err := New(WithLogger(quietLogger())).Dispatch(ctx, addition(t, 3, 4), player)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, player.Log())
}

func TestDispatchRejectsBadEndpoint(t *testing.T) {
	player := &domain.Player{ID: "p1", Name: "alice", URL: "not a url"}
	_, err := New(WithLogger(quietLogger())).Dispatch(context.Background(), addition(t, 3, 4), player)
	require.ErrorIs(t, err, domain.ErrInvalidPlayer)
	require.Empty(t, player.Log())
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	srv := answering(http.StatusOK, "7")
	defer srv.Close()

	player := newPlayer(t, srv.URL)
	var outcome domain.Outcome
	require.NotPanics(t, func() {
		var err error
		outcome, err = New(WithLogger(nil)).Dispatch(context.Background(), addition(t, 3, 4), player)
		require.NoError(t, err)
	})
	require.Equal(t, domain.ResultCorrect, outcome.Result)
	require.Len(t, player.Log(), 1)
}

func TestLogGrowsNewestFirst(t *testing.T) {
	var n atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1)%2 == 0 {
			_, _ = w.Write([]byte("wrong"))
			return
		}
		_, _ = w.Write([]byte("7"))
	}))
	defer srv.Close()

	player := newPlayer(t, srv.URL)
	d := New(WithLogger(quietLogger()))
	for i := 0; i < 5; i++ {
		_, err := d.Dispatch(context.Background(), addition(t, 3, 4), player)
		require.NoError(t, err)
	}
	lines := player.Log()
	require.Len(t, lines, 5)
	require.Equal(t, domain.ResultCorrect, lines[0].Result)
	require.Equal(t, domain.ResultWrong, lines[1].Result)
	require.Equal(t, 30, player.Score())
}

func TestClassifyIsPure(t *testing.T) {
	q := addition(t, 3, 4)
	require.Equal(t, domain.ResultCorrect, Classify(q, Attempt{State: StateSuccess, Answer: "7"}))
	require.Equal(t, domain.ResultWrong, Classify(q, Attempt{State: StateSuccess, Answer: "8"}))
	require.Equal(t, domain.ResultErrorResponse, Classify(q, Attempt{State: StateHTTPError, Answer: "7"}))
	require.Equal(t, domain.ResultNoServerResponse, Classify(q, Attempt{State: StateNetworkFailure}))
	require.True(t, strings.HasPrefix(question.Render(q), q.ID()))
}

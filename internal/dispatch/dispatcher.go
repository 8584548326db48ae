// Package dispatch asks one question to one player over HTTP and turns the
// round-trip into a scored, logged outcome.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"quiz-engine/internal/domain"
	"quiz-engine/internal/question"
)

const (
	defaultTimeout = 10 * time.Second
	maxAnswerBytes = 64 << 10
)

// State is the terminal state of one attempt.
type State int

const (
	StatePending State = iota
	StateSuccess
	StateHTTPError
	StateNetworkFailure
)

// Attempt is the raw outcome of the network call. Every transport fault
// (refused, timeout, DNS, malformed response) ends in StateNetworkFailure.
type Attempt struct {
	State  State
	Status int
	Answer string
	Err    error
}

// Classify maps an attempt and the question it asked to a result.
func Classify(q question.Question, a Attempt) domain.Result {
	switch a.State {
	case StateSuccess:
		if question.AnsweredCorrectly(q, a.Answer) {
			return domain.ResultCorrect
		}
		return domain.ResultWrong
	case StateHTTPError:
		return domain.ResultErrorResponse
	default:
		return domain.ResultNoServerResponse
	}
}

// Awarded is the score for a result: the question's points when correct.
func Awarded(q question.Question, result domain.Result) int {
	if result == domain.ResultCorrect {
		return q.Points()
	}
	return 0
}

// Dispatcher sends questions to players. It is safe for concurrent use
// across players; callers keep at most one dispatch in flight per player.
type Dispatcher struct {
	client  *http.Client
	timeout time.Duration
	logger  *log.Logger
}

type Option func(*Dispatcher)

func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithTimeout bounds each network call; exceeding it is a network failure.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger sets the request logger; nil keeps log.Default().
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:  &http.Client{},
		timeout: defaultTimeout,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Target builds the request URL: the player's endpoint with the rendered
// question in the q query parameter.
func Target(endpoint string, q question.Question) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidPlayer, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("%w: endpoint %q is not an http url", domain.ErrInvalidPlayer, endpoint)
	}
	values := u.Query()
	values.Set("q", question.Render(q))
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// Dispatch runs one attempt and appends exactly one log line to the player.
// It never retries. An error is returned only for an unusable player
// endpoint or when ctx is cancelled mid-flight; nothing is logged then.
func (d *Dispatcher) Dispatch(ctx context.Context, q question.Question, player *domain.Player) (domain.Outcome, error) {
	target, err := Target(player.URL, q)
	if err != nil {
		return domain.Outcome{}, err
	}

	attempt := d.do(ctx, target)
	if attempt.State == StateNetworkFailure && ctx.Err() != nil {
		return domain.Outcome{}, fmt.Errorf("dispatch to %s abandoned: %w", player.Name, ctx.Err())
	}
	if attempt.Err != nil {
		d.logger.Printf("player %s: %v", player.Name, attempt.Err)
	}

	result := Classify(q, attempt)
	line := domain.LogLine{
		QuestionID: q.ID(),
		Result:     result,
		Points:     Awarded(q, result),
		Status:     attempt.Status,
		Answer:     attempt.Answer,
	}
	player.LogResult(line)

	return domain.Outcome{
		QuestionID: q.ID(),
		Question:   q.AsText(),
		Result:     result,
		Points:     line.Points,
		Status:     attempt.Status,
		Answer:     attempt.Answer,
		Delay:      result.Delay(),
	}, nil
}

func (d *Dispatcher) do(ctx context.Context, target string) Attempt {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	d.logger.Printf("GET: %s", target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Attempt{State: StateNetworkFailure, Err: err}
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return Attempt{State: StateNetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxAnswerBytes))
		return Attempt{State: StateHTTPError, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAnswerBytes))
	if err != nil {
		return Attempt{State: StateNetworkFailure, Err: fmt.Errorf("read answer: %w", err)}
	}
	return Attempt{State: StateSuccess, Status: resp.StatusCode, Answer: string(body)}
}

package tokenization

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/fingerprint"
	"github.com/google/uuid"
)

// Output receives the terminal event of a flow. Exactly one of its methods
// is called, at most once.
type Output interface {
	DidTokenize(flowID string, tokens domain.Tokens, method domain.PaymentMethodType)
	DidFail(flowID string, err error)
}

// Tracker accepts analytics events without blocking.
type Tracker interface {
	Track(event analytics.Event)
}

type Dependencies struct {
	Payments    PaymentService
	Auth        AuthorizationService
	Fingerprint application.FingerprintProvider
	Tracker     Tracker
	Output      Output
	Logger      *slog.Logger
}

type Config struct {
	Request domain.TokenizeRequest
	// Option is the payment option the payer picked. When set, the request
	// amount must be in the option's charge currency, and the backend is
	// asked for the option's charge instead.
	Option *domain.PaymentOption
	Params Params
}

// Snapshot is a point-in-time view of a flow.
type Snapshot struct {
	ID        string
	Method    domain.PaymentMethodType
	State     State
	Challenge *domain.AuthSession
	Tokens    *domain.Tokens
	Err       error
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Flow runs one tokenization attempt from idle to a terminal state.
type Flow struct {
	id          string
	strategy    Strategy
	option      *domain.PaymentOption
	amount      domain.Amount
	fingerprint application.FingerprintProvider
	tracker     Tracker
	output      Output
	logger      *slog.Logger
	createdAt   time.Time

	mu         sync.Mutex
	state      State
	updatedAt  time.Time
	started    bool
	ctx        context.Context
	cancel     context.CancelFunc
	challenge  *domain.AuthSession
	tokens     *domain.Tokens
	err        error
	answerGen  uint64
	answerStop context.CancelFunc
	authorized chan struct{}
	done       chan struct{}
}

func NewFlow(cfg Config, deps Dependencies) (*Flow, error) {
	strategy, err := NewStrategy(cfg.Request, cfg.chargeParams(), deps.Payments, deps.Auth)
	if err != nil {
		return nil, err
	}
	return NewFlowWithStrategy(strategy, cfg, deps), nil
}

// chargeParams swaps in the option's charge, which may carry a fee on top of
// the merchant amount.
func (c Config) chargeParams() Params {
	p := c.Params
	if c.Option != nil {
		p.Amount = c.Option.Charge
	}
	return p
}

// NewFlowWithStrategy builds a flow around an already chosen strategy.
func NewFlowWithStrategy(strategy Strategy, cfg Config, deps Dependencies) *Flow {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	now := time.Now()

	return &Flow{
		id:          id,
		strategy:    strategy,
		option:      cfg.Option,
		amount:      cfg.Params.Amount,
		fingerprint: deps.Fingerprint,
		tracker:     deps.Tracker,
		output:      deps.Output,
		logger:      logger.With("flow_id", id, "method", strategy.Method()),
		createdAt:   now,
		state:       StateIdle,
		updatedAt:   now,
		authorized:  make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (f *Flow) ID() string                       { return f.id }
func (f *Flow) Method() domain.PaymentMethodType { return f.strategy.Method() }
func (f *Flow) CreatedAt() time.Time             { return f.createdAt }

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Challenge returns the outstanding auth session while awaiting_auth.
func (f *Flow) Challenge() (domain.AuthSession, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingAuth || f.challenge == nil {
		return domain.AuthSession{}, false
	}
	return *f.challenge, true
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		ID:        f.id,
		Method:    f.strategy.Method(),
		State:     f.state,
		Err:       f.err,
		CreatedAt: f.createdAt,
		UpdatedAt: f.updatedAt,
	}
	if f.challenge != nil && f.state == StateAwaitingAuth {
		c := *f.challenge
		s.Challenge = &c
	}
	if f.tokens != nil {
		t := *f.tokens
		s.Tokens = &t
	}
	return s
}

// Done is closed once the flow reached a terminal state.
func (f *Flow) Done() <-chan struct{} {
	return f.done
}

// Start runs the flow on its own goroutine. The flow outlives ctx's
// cancellation; use Abandon to stop it.
func (f *Flow) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return ErrAlreadyStarted
	}
	if f.state.IsTerminal() {
		f.mu.Unlock()
		return domain.ErrInterrupted
	}
	f.started = true
	f.ctx, f.cancel = context.WithCancel(context.WithoutCancel(ctx))
	runCtx := f.ctx
	f.mu.Unlock()

	go f.run(runCtx)
	return nil
}

// Wait blocks until the flow finishes or ctx is done.
func (f *Flow) Wait(ctx context.Context) (*domain.Tokens, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t := *f.tokens
	return &t, nil
}

func (f *Flow) run(ctx context.Context) {
	if err := f.checkCurrency(); err != nil {
		f.fail(err)
		return
	}
	if err := f.strategy.Prepare(ctx); err != nil {
		f.fail(err)
		return
	}

	if !f.advance(StateAwaitingFingerprint, nil) {
		return
	}
	f.track(analytics.EventAttemptStarted, nil)

	sessionID, err := f.fingerprint.Profile(ctx)
	if err != nil {
		f.fail(err)
		return
	}
	if sessionID == "" {
		f.fail(fingerprint.ErrInternal)
		return
	}

	challenge, err := f.strategy.Authorize(ctx, sessionID)
	if err != nil {
		f.fail(err)
		return
	}
	if challenge != nil {
		if !f.advance(StateAwaitingAuth, challenge) {
			return
		}
		f.track(analytics.EventAuthChallenge, nil)

		select {
		case <-f.authorized:
		case <-ctx.Done():
			return
		}
	}

	if !f.advance(StateTokenizing, nil) {
		return
	}
	tokens, err := f.strategy.Tokenize(ctx, sessionID)
	if err != nil {
		f.fail(err)
		return
	}
	f.succeed(*tokens)
}

func (f *Flow) checkCurrency() error {
	if f.option == nil {
		return nil
	}
	if !f.amount.SameCurrency(f.option.Charge) {
		return domain.NewCurrencyMismatchError(f.option.Charge.Currency, f.amount.Currency)
	}
	return nil
}

// SubmitAnswer checks the payer's answer to the outstanding challenge. A
// newer submission supersedes this one, which then returns ErrInterrupted.
// A wrong answer leaves the flow awaiting another attempt.
func (f *Flow) SubmitAnswer(ctx context.Context, answer string) error {
	challenger, ok := f.strategy.(ChallengeStrategy)
	if !ok {
		return ErrNotAwaitingAuth
	}

	f.mu.Lock()
	if f.state != StateAwaitingAuth || f.challenge == nil {
		f.mu.Unlock()
		return ErrNotAwaitingAuth
	}
	challenge := *f.challenge
	gen, callCtx, stop := f.beginAnswerLocked(ctx)
	f.mu.Unlock()
	defer stop()

	next, err := challenger.CheckAnswer(callCtx, challenge, answer)

	f.mu.Lock()
	if gen != f.answerGen || f.state != StateAwaitingAuth {
		f.mu.Unlock()
		return domain.ErrInterrupted
	}
	f.answerStop = nil

	if err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			// The caller went away; the challenge stays open.
			f.mu.Unlock()
			return domain.ErrInterrupted
		}
		if keepsChallenge(err) {
			f.mu.Unlock()
			return application.MapError(err)
		}
		emit := f.terminateLocked(nil, err)
		f.mu.Unlock()
		emit()
		return f.Err()
	}

	if next != nil {
		f.challenge = next
		f.touchLocked()
		f.mu.Unlock()
		return nil
	}
	f.challenge = nil
	close(f.authorized)
	f.mu.Unlock()
	return nil
}

// ResendCode asks for a new challenge code. Any answer still in flight for
// the previous session is interrupted.
func (f *Flow) ResendCode(ctx context.Context) error {
	challenger, ok := f.strategy.(ChallengeStrategy)
	if !ok {
		return ErrNotAwaitingAuth
	}

	f.mu.Lock()
	if f.state != StateAwaitingAuth || f.challenge == nil {
		f.mu.Unlock()
		return ErrNotAwaitingAuth
	}
	challenge := *f.challenge
	flowCtx := f.ctx
	f.mu.Unlock()

	callCtx, cancel := context.WithCancel(flowCtx)
	defer cancel()
	defer context.AfterFunc(ctx, cancel)()

	next, err := challenger.ResendCode(callCtx, challenge)
	if err != nil {
		return application.MapError(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingAuth {
		return domain.ErrInterrupted
	}
	if f.answerStop != nil {
		f.answerStop()
		f.answerStop = nil
	}
	f.answerGen++
	f.challenge = next
	f.touchLocked()
	return nil
}

// Abandon stops the flow. An unfinished flow fails with interrupted and any
// response arriving later is discarded.
func (f *Flow) Abandon() {
	f.mu.Lock()
	emit := f.terminateLocked(nil, domain.ErrInterrupted)
	f.mu.Unlock()
	emit()
}

func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) beginAnswerLocked(ctx context.Context) (uint64, context.Context, func()) {
	if f.answerStop != nil {
		f.answerStop()
	}
	f.answerGen++

	callCtx, cancel := context.WithCancel(f.ctx)
	stopAfter := context.AfterFunc(ctx, cancel)
	f.answerStop = cancel

	return f.answerGen, callCtx, func() {
		stopAfter()
		cancel()
	}
}

// keepsChallenge reports whether the payer may simply try again.
func keepsChallenge(err error) bool {
	if authErr, ok := domain.IsAuthError(err); ok {
		return authErr.Code == domain.AuthInvalidAnswer
	}
	return domain.IsValidationError(err)
}

// advance moves a running flow forward. It returns false once the flow has
// been terminated concurrently.
func (f *Flow) advance(target State, challenge *domain.AuthSession) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.state.canTransitionTo(target); err != nil {
		if !f.state.IsTerminal() {
			f.logger.Error("unexpected transition", "from", f.state, "to", target)
		}
		return false
	}
	f.logger.Debug("flow transition", "from", f.state, "to", target)
	f.state = target
	f.challenge = challenge
	f.touchLocked()
	return true
}

func (f *Flow) succeed(tokens domain.Tokens) {
	f.mu.Lock()
	emit := f.terminateLocked(&tokens, nil)
	f.mu.Unlock()
	emit()
}

func (f *Flow) fail(err error) {
	f.mu.Lock()
	emit := f.terminateLocked(nil, err)
	f.mu.Unlock()
	emit()
}

// terminateLocked moves the flow to its terminal state and returns the
// notification to run after unlocking. Terminating twice is a no-op.
func (f *Flow) terminateLocked(tokens *domain.Tokens, err error) func() {
	if f.state.IsTerminal() {
		return func() {}
	}

	if f.cancel != nil {
		defer f.cancel()
	}
	if f.answerStop != nil {
		f.answerStop()
		f.answerStop = nil
	}
	f.answerGen++
	f.challenge = nil
	f.touchLocked()

	if err != nil {
		mapped := application.MapError(err)
		f.state = StateFailed
		f.err = mapped
		f.logger.Warn("flow failed", "error", mapped, "kind", application.KindOf(mapped))

		return func() {
			f.track(analytics.EventTokenizeFail, mapped)
			if f.output != nil {
				f.output.DidFail(f.id, mapped)
			}
			close(f.done)
		}
	}

	f.state = StateSucceeded
	f.tokens = tokens
	f.logger.Info("flow succeeded")

	result := *tokens
	return func() {
		f.track(analytics.EventTokenizeSuccess, nil)
		if f.output != nil {
			f.output.DidTokenize(f.id, result, f.strategy.Method())
		}
		close(f.done)
	}
}

func (f *Flow) touchLocked() {
	f.updatedAt = time.Now()
}

func (f *Flow) track(name analytics.Name, err error) {
	if f.tracker == nil {
		return
	}
	authType, tokenType := f.strategy.Tags()
	event := analytics.Event{
		Name:      name,
		FlowID:    f.id,
		Scheme:    f.strategy.Scheme(),
		AuthType:  authType,
		TokenType: tokenType,
	}
	if err != nil {
		event.ErrorKind = string(application.KindOf(err))
	}
	f.tracker.Track(event)
}

// IsInterrupted reports whether err resolves an abandoned or superseded call.
func IsInterrupted(err error) bool {
	return errors.Is(err, domain.ErrInterrupted) || application.KindOf(err) == application.KindInterrupted
}

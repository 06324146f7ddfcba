package license

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"shareware/internal/config"
)

// namespacePattern accepts the identifier shapes declaring components use:
// letters, digits, underscores, dashes, and :: or . separators, starting
// with a letter.
var namespacePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*((::|\.)[A-Za-z][A-Za-z0-9_-]*)*$`)

// Declarer is the explicit registration call a declaring component makes
// once at initialization, replacing the source idiom of triggering on module
// inclusion. It looks up the candidate key from the environment, runs the
// engine, and records the outcome in the registry.
type Declarer struct {
	engine   *Engine
	registry *Registry
	guard    *AttemptGuard
	validate *validator.Validate

	keyEnvPrefix string
	lookupEnv    func(string) (string, bool)
	now          func() time.Time
}

// DeclarerOption configures optional declarer behavior.
type DeclarerOption func(*Declarer)

// WithGuard throttles validation attempts per namespace.
func WithGuard(g *AttemptGuard) DeclarerOption {
	return func(d *Declarer) {
		d.guard = g
	}
}

// WithEnvLookup overrides environment lookup, for tests.
func WithEnvLookup(fn func(string) (string, bool)) DeclarerOption {
	return func(d *Declarer) {
		d.lookupEnv = fn
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) DeclarerOption {
	return func(d *Declarer) {
		d.now = now
	}
}

// NewDeclarer wires a declarer over an engine and registry.
func NewDeclarer(engine *Engine, registry *Registry, keyEnvPrefix string, opts ...DeclarerOption) *Declarer {
	if keyEnvPrefix == "" {
		keyEnvPrefix = config.KeyEnvPrefix
	}
	d := &Declarer{
		engine:       engine,
		registry:     registry,
		validate:     validator.New(),
		keyEnvPrefix: keyEnvPrefix,
		lookupEnv:    os.LookupEnv,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Declare validates the namespace's candidate key and records the outcome.
// The returned state is informational only; declaration never blocks the
// declaring component's own functionality. The only error conditions are
// caller bugs (invalid namespace) and attempt throttling, and even a
// throttled attempt is recorded, as Invalid.
func (d *Declarer) Declare(ctx context.Context, namespace string) (State, error) {
	if err := d.checkNamespace(namespace); err != nil {
		return StateInvalid, err
	}

	now := d.now()
	rawKey := d.candidateKey(namespace)

	if d.guard != nil && rawKey != "" && !d.guard.Allow(namespace) {
		d.engine.metrics.recordRateLimitHit(ctx)
		d.registry.AddOrUpdate(namespace, NewEvent(namespace, rawKey, StateInvalid, now))
		logAction(ctx, slog.LevelWarn, "declare", "validation attempt rate limited",
			slog.String("namespace", namespace),
		)
		return StateInvalid, ErrRateLimited
	}

	state := d.engine.Validate(ctx, namespace, rawKey, now)
	d.registry.AddOrUpdate(namespace, NewEvent(namespace, rawKey, state, now))

	logAction(ctx, slog.LevelInfo, "declare", "namespace declared",
		slog.String("namespace", namespace),
		slog.String("state", state.String()),
	)
	return state, nil
}

// checkNamespace rejects programming-invariant violations before the engine
// runs: empty names, overlong names, or names that are not identifiers.
func (d *Declarer) checkNamespace(namespace string) error {
	if err := d.validate.Var(namespace, "required,max=128,printascii"); err != nil {
		return ErrInvalidNamespace
	}
	if !namespacePattern.MatchString(namespace) {
		return ErrInvalidNamespace
	}
	return nil
}

// candidateKey fetches the namespace's key from the environment, or "" when
// unset.
func (d *Declarer) candidateKey(namespace string) string {
	key, _ := d.lookupEnv(KeyEnvVar(d.keyEnvPrefix, namespace))
	return key
}

// KeyEnvVar returns the environment variable name holding the candidate key
// for a namespace: the prefix plus the upper-snake transform of the name.
// "my-lib" becomes SHAREWARE_KEY_MY_LIB, "Active::Demo" becomes
// SHAREWARE_KEY_ACTIVE_DEMO.
func KeyEnvVar(prefix, namespace string) string {
	var b strings.Builder
	b.WriteString(prefix)
	last := byte(0)
	for i := 0; i < len(namespace); i++ {
		ch := namespace[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			b.WriteByte(ch - 'a' + 'A')
			last = ch
		case (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9'):
			b.WriteByte(ch)
			last = ch
		default:
			if last != '_' {
				b.WriteByte('_')
			}
			last = '_'
		}
	}
	return b.String()
}

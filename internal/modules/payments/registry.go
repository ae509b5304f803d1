package payments

import "fmt"

// Config tunes the simulated gateway. Zero rates fall back to the
// defaults; Rand is the outcome source shared by the built-in
// strategies.
type Config struct {
	CardSuccessRate   float64
	BankSuccessRate   float64
	WalletSuccessRate float64
	Rand              RandFunc
}

const (
	defaultCardSuccessRate   = 0.95
	defaultBankSuccessRate   = 0.95
	defaultWalletSuccessRate = 0.90
)

func (c Config) withDefaults() Config {
	if c.CardSuccessRate <= 0 {
		c.CardSuccessRate = defaultCardSuccessRate
	}
	if c.BankSuccessRate <= 0 {
		c.BankSuccessRate = defaultBankSuccessRate
	}
	if c.WalletSuccessRate <= 0 {
		c.WalletSuccessRate = defaultWalletSuccessRate
	}
	if c.Rand == nil {
		c.Rand = defaultRand
	}
	return c
}

// Registry maps a payment method to its Strategy.
type Registry struct {
	strategies map[Method]Strategy
}

// NewRegistry registers exactly the three built-in strategies. There is
// no implicit fallback for anything else.
func NewRegistry(cfg Config) *Registry {
	cfg = cfg.withDefaults()

	r := &Registry{strategies: make(map[Method]Strategy)}
	r.Register(NewCardStrategy(cfg.CardSuccessRate, cfg.Rand))
	r.Register(NewBankTransferStrategy(cfg.BankSuccessRate, cfg.Rand))
	r.Register(NewWalletStrategy(cfg.WalletSuccessRate, cfg.Rand))
	return r
}

// Register adds or overwrites the mapping for the strategy's method.
// Last registration wins.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Method()] = s
}

func (r *Registry) Resolve(method Method) (Strategy, error) {
	s, ok := r.strategies[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	return s, nil
}

func (r *Registry) IsSupported(method Method) bool {
	_, ok := r.strategies[method]
	return ok
}

// List returns the registered method ids in no guaranteed order.
func (r *Registry) List() []Method {
	out := make([]Method, 0, len(r.strategies))
	for m := range r.strategies {
		out = append(out, m)
	}
	return out
}

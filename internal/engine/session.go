package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/enforce/pkg/eval"
	"github.com/leapstack-labs/enforce/pkg/scope"
)

// Session evaluates successive snippets against one persistent store, as
// the REPL does. A Session is not safe for concurrent use.
type Session struct {
	engine *Engine
	logger *slog.Logger
	eval   *eval.Evaluator
	store  *scope.Store
}

// Session starts a new session with an empty store.
func (e *Engine) Session() *Session {
	logger := e.logger.With("session_id", uuid.New().String())
	return &Session{
		engine: e,
		logger: logger,
		eval:   e.evaluator(logger),
		store:  scope.New(),
	}
}

// Eval parses source and executes it in the session's store. Bindings made
// before an error are kept.
func (s *Session) Eval(ctx context.Context, name, source string) error {
	prog, err := s.engine.Parse(name, source)
	if err != nil {
		return err
	}
	_, err = execute(ctx, s.eval, prog.Statements, s.store)
	return err
}

// Store returns the session's store.
func (s *Session) Store() *scope.Store {
	return s.store
}

// Reset discards every binding.
func (s *Session) Reset() {
	s.logger.Debug("session reset")
	s.store = scope.New()
}

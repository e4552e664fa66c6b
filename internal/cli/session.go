package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/parsemapper/internal/adapter"
	"github.com/roach88/parsemapper/internal/config"
	"github.com/roach88/parsemapper/internal/parse"
	"github.com/roach88/parsemapper/internal/store"
	"github.com/roach88/parsemapper/internal/where"
)

// session is everything a command needs to talk to Parse.
type session struct {
	adapter *adapter.Adapter
	journal *store.Store
	logger  *zap.Logger
}

// openSession resolves config, applies flag overrides, and connects.
// Failures are reported through formatter.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*session, error) {
	logger := opts.logger(cmd.ErrOrStderr())

	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, err, nil)
	}
	if opts.Master {
		cfg.Master = true
	}
	if opts.Journal != "" {
		cfg.Journal = opts.Journal
	}
	if err := cfg.Validate(); err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeConfig, err, nil)
	}

	s := &session{logger: logger}

	var clientOpts []parse.Option
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, parse.WithHTTPClient(opts.HTTPClient))
	}
	if cfg.Journal != "" {
		st, err := store.Open(cfg.Journal)
		if err != nil {
			return nil, formatter.Fail(ExitCommandError, ErrCodeJournal, err, map[string]string{"path": cfg.Journal})
		}
		s.journal = st
		clientOpts = append(clientOpts, parse.WithObserver(st.Observer(ctx, func(err error) {
			logger.Warn("journal write failed", zap.Error(err))
		})))
		logger.Debug("journaling calls", zap.String("path", cfg.Journal))
	}

	client := parse.New(cfg.Parse(), clientOpts...)
	s.adapter = adapter.New(client, adapter.WithLogger(logger))
	logger.Debug("connected",
		zap.String("host", cfg.Host),
		zap.String("app_id", cfg.AppID),
		zap.Bool("master", cfg.Master))
	return s, nil
}

// Close releases the journal and flushes the logger.
func (s *session) Close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.logger.Error("error closing journal", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

// remoteFailure maps an adapter error to an error code and exit code.
func remoteFailure(formatter *OutputFormatter, err error) error {
	var (
		te *where.TranslationError
		ve *where.ValidationError
		ae *parse.APIError
	)
	switch {
	case errors.As(err, &ve):
		return formatter.Fail(ExitCommandError, ErrCodePagination, err, map[string]string{"code": string(ve.Code)})
	case errors.As(err, &te):
		return formatter.Fail(ExitFailure, ErrCodeTranslate, err, translationDetails(te))
	case errors.As(err, &ae):
		code := ErrCodeRemote
		if parse.IsNotFound(err) {
			code = ErrCodeNotFound
		}
		return formatter.Fail(ExitFailure, code, err, map[string]int{"status": ae.Status, "parse_code": ae.Code})
	case errors.Is(err, adapter.ErrMissingID), errors.Is(err, adapter.ErrMissingClass):
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
	default:
		return formatter.Fail(ExitFailure, ErrCodeUnreachable, err, nil)
	}
}

func translationDetails(te *where.TranslationError) map[string]string {
	details := map[string]string{"code": string(te.Code)}
	if te.Field != "" {
		details["field"] = te.Field
	}
	return details
}

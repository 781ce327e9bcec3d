package jsonfunc

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/config"
	"github.com/tenglei/jsoncol/internal/jsonpath"
	"github.com/tenglei/jsoncol/internal/parsecache"
	"github.com/tenglei/jsoncol/internal/ratelimit"
)

// Scope brackets a run of batch operations. It owns the compiled
// constant path, the parse cache and the degradation tally, and is not
// safe for concurrent use.
type Scope struct {
	id        uuid.UUID
	opts      config.Options
	logger    *slog.Logger
	cache     *parsecache.Cache
	warn      *ratelimit.Limiter
	constPath *jsonpath.Path
	rowErrors int
}

// Prepare builds a scope for one prepare/close bracket. When paths is a
// constant column its path text compiles here, once; a malformed
// constant fails the whole bracket instead of degrading rows. A nil
// logger discards.
func Prepare(opts config.Options, logger *slog.Logger, paths *column.Texts) (*Scope, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Scope{
		id:     uuid.New(),
		opts:   opts,
		logger: logger,
		cache:  parsecache.New(opts.ReuseParse),
		warn:   ratelimit.New(opts.WarnPerSecond),
	}

	if paths != nil && paths.IsConst() && !paths.IsNull(0) {
		if text := paths.Value(0); text != "" {
			p, err := jsonpath.Compile(text)
			if err != nil {
				return nil, fmt.Errorf("%w: constant path %q: %w", ErrDataQuality, text, err)
			}
			s.constPath = p
		}
	}

	s.logger.Debug("scope prepared",
		"scope", s.id,
		"reuse_parse", opts.ReuseParse,
		"lazy_dynamic_flattening", opts.LazyDynamicFlattening,
		"const_path", s.constPath != nil,
	)
	return s, nil
}

// Close drops the scope's cached state and reports its tallies.
func (s *Scope) Close() {
	s.logger.Debug("scope closed",
		"scope", s.id,
		"parses", s.cache.Parses(),
		"row_errors", s.rowErrors,
	)
	s.cache.Reset()
}

// RowErrors returns how many rows degraded to null because of malformed
// per-row input.
func (s *Scope) RowErrors() int { return s.rowErrors }

// Parses returns how many document parses the scope performed on text
// input. With reuse_parse on, repeated text parses once.
func (s *Scope) Parses() int { return s.cache.Parses() }

// degrade nulls out one row: count it, warn through the throttle.
func (s *Scope) degrade(row int, err error) {
	s.rowErrors++
	if s.warn.Allow() {
		s.logger.Warn("degraded row to null", "scope", s.id, "row", row, "error", err)
	}
}

package locale

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/findnonascii/internal/charset"
)

// Notifier receives the messages the resolver shows the user.
type Notifier interface {
	Warn(format string, args ...any)
	Info(format string, args ...any)
}

// Resolver picks the encoding for the whole run. It is used once, before any
// input is scanned.
type Resolver struct {
	// Env is the ambient locale.
	Env Env
	// Override is an explicitly configured encoding. It bypasses the locale
	// and the prompt, and must be valid.
	Override charset.Name
	// Prompt, when non-nil, enables the interactive confirmation loop.
	Prompt Prompter
	Notify Notifier
	Logger *slog.Logger
}

// Resolve returns the codec to decode with.
//
// Without a prompt, a non-UTF-8 locale only produces a warning; a locale
// encoding that cannot be used at all is an error. With a prompt the user may
// accept the current encoding with Enter or type another one until a usable
// one is given. If input ends first, the locale encoding is used when it is
// valid and a *charset.ConfigurationError is returned otherwise.
func (r *Resolver) Resolve(ctx context.Context) (charset.Codec, error) {
	logger := r.logger()

	if r.Override != "" {
		codec, err := charset.Lookup(string(r.Override))
		if err != nil {
			return nil, fmt.Errorf("configured encoding: %w", err)
		}
		logger.Debug("using configured encoding", slog.String("encoding", codec.Name().String()))
		return codec, nil
	}

	setting := r.Env.Setting()
	if IsUTF8(setting) {
		logger.Debug("locale encoding is UTF-8", slog.String("locale", setting))
		return charset.UTF8, nil
	}

	name := Codeset(setting)
	if name == "" {
		name = charset.ASCII.Name()
		logger.Debug("locale names no encoding, assuming US-ASCII", slog.String("locale", setting))
	}
	codec, err := charset.Lookup(string(name))
	if err == nil && codec == charset.UTF8 {
		return codec, nil
	}

	if r.Prompt == nil {
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", setting, err)
		}
		r.notify().Warn("the locale encoding %s is not UTF-8 (locale %q); decoding as %s",
			name, setting, codec.Name())
		return codec, nil
	}
	if err != nil {
		r.notify().Warn("%v", err)
		codec = nil
	}
	return r.confirm(ctx, name, codec)
}

func (r *Resolver) confirm(ctx context.Context, current charset.Name, good charset.Codec) (charset.Codec, error) {
	logger := r.logger()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return r.fallback(current, good, err)
		}

		if good != nil {
			r.notify().Info("Current encoding is %s, which is not UTF-8. Press Enter to keep it or type another encoding.", current)
		} else {
			r.notify().Info("Current encoding %s cannot be used. Type another encoding.", current)
		}

		line, err := r.Prompt.Readline()
		if err != nil {
			return r.fallback(current, good, err)
		}

		typed := strings.TrimSpace(line)
		if typed == "" {
			if good == nil {
				continue
			}
			logger.Debug("encoding kept", slog.String("encoding", good.Name().String()), slog.Int("attempt", attempt))
			return good, nil
		}

		codec, err := charset.Lookup(typed)
		if err != nil {
			r.notify().Warn("%v", err)
			continue
		}
		logger.Debug("encoding replaced", slog.String("encoding", codec.Name().String()), slog.Int("attempt", attempt))
		return codec, nil
	}
}

// fallback ends an interrupted prompt with the last usable encoding.
func (r *Resolver) fallback(current charset.Name, good charset.Codec, cause error) (charset.Codec, error) {
	if good == nil {
		return nil, fmt.Errorf("no encoding confirmed (%v): %w", cause, &charset.ConfigurationError{
			Name:   current,
			Reason: "cannot be used and no replacement was entered",
		})
	}
	reason := "input ended"
	if !errors.Is(cause, io.EOF) {
		reason = cause.Error()
	}
	r.notify().Warn("no encoding entered (%s); continuing with %s", reason, good.Name())
	return good, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Resolver) notify() Notifier {
	if r.Notify == nil {
		return discardNotifier{}
	}
	return r.Notify
}

type discardNotifier struct{}

func (discardNotifier) Warn(string, ...any) {}
func (discardNotifier) Info(string, ...any) {}

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/projector/internal/config"
	"github.com/roach88/projector/internal/projector"
	"github.com/roach88/projector/internal/store"
)

// Dispatch executes req against proj. Mutating requests are saved through
// backend before returning; read-only requests never touch it.
func Dispatch(ctx context.Context, proj *projector.Projector, backend store.Backend, req config.Request, out *OutputFormatter) error {
	switch req.Op {
	case config.OpPrintAll, config.OpPrint:
		if err := show(proj, req, out); err != nil {
			return WrapExitError(ExitFailure, "failed to print", err)
		}
		return nil
	case config.OpAdd:
		proj.SetValue(req.Key, req.Value)
	case config.OpRemove:
		proj.RemoveValue(req.Key)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown operation %s", req.Op))
	}

	if err := backend.Save(ctx, proj.Data()); err != nil {
		return WrapExitError(ExitFailure, "failed to save store", err)
	}
	slog.Debug("store updated", "op", req.Op.String(), "key", req.Key, "dir", proj.Pwd())
	return nil
}

func show(proj *projector.Projector, req config.Request, out *OutputFormatter) error {
	if req.ShowAll() {
		return out.Values(proj.GetValues())
	}

	value, dir, ok := proj.Lookup(req.Key)
	if !ok {
		slog.Debug("key not resolved", "key", req.Key, "pwd", proj.Pwd())
		return nil
	}
	slog.Debug("key resolved", "key", req.Key, "from", dir)
	return out.Value(value)
}

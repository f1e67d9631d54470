package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// newEvalContext exposes the process environment as `env` plus a handful of
// string helpers to configuration expressions.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environmentValue(os.Environ()),
		},
		Functions: map[string]function.Function{
			"upper":    stdlib.UpperFunc,
			"lower":    stdlib.LowerFunc,
			"concat":   stdlib.ConcatFunc,
			"coalesce": stdlib.CoalesceFunc,
			"join":     stdlib.JoinFunc,
			"format":   stdlib.FormatFunc,
		},
	}
}

// environmentValue converts KEY=VALUE pairs into a cty object.
func environmentValue(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))
	for _, e := range environ {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			vars[pair[0]] = cty.StringVal(pair[1])
		}
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

// decodeProperties evaluates a properties expression into a string map.
// Numbers and bools are converted to their string form; a null or absent
// expression yields an empty map.
func decodeProperties(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) (map[string]string, error) {
	logger := ctxlog.FromContext(ctx)
	props := map[string]string{}
	if expr == nil {
		return props, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return props, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("properties must be known at load time")
	}

	converted, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to map of strings: %w", val.Type().FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted properties type.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}
	if converted.LengthInt() == 0 {
		return props, nil
	}

	if err := gocty.FromCtyValue(converted, &props); err != nil {
		return nil, err
	}
	return props, nil
}

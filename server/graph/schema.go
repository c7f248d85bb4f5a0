package graph

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/sig-0/fcbrates/server/graph/model"
	"github.com/sig-0/fcbrates/storage/types"
)

//go:embed schema.graphqls
var schemaSDL string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "schema.graphqls",
	Input: schemaSDL,
})

var errIntrospectionDisabled = errors.New("introspection disabled")

// executableSchema resolves validated query operations
// against the Resolver, writing the response in selection order
type executableSchema struct {
	resolver *Resolver
}

// NewExecutableSchema creates the executable schema served by the GraphQL handler
func NewExecutableSchema(resolver *Resolver) graphql.ExecutableSchema {
	return &executableSchema{
		resolver: resolver,
	}
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Complexity(
	_ context.Context,
	_, _ string,
	_ int,
	_ map[string]any,
) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	first := true

	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}

		first = false

		if opCtx.Operation.Operation != ast.Query {
			return graphql.ErrorResponse(ctx, "unsupported operation: %s", opCtx.Operation.Operation)
		}

		ec := &execution{
			opCtx:    opCtx,
			resolver: e.resolver,
		}

		var buf bytes.Buffer

		ec.query(ctx, &buf, opCtx.Operation.SelectionSet)

		return &graphql.Response{
			Data:   buf.Bytes(),
			Errors: ec.errors,
		}
	}
}

// execution is the state of a single operation
type execution struct {
	opCtx    *graphql.OperationContext
	resolver *Resolver
	errors   gqlerror.List
}

func (ec *execution) query(ctx context.Context, w *bytes.Buffer, sel ast.SelectionSet) {
	w.WriteByte('{')

	for i, f := range graphql.CollectFields(ec.opCtx, sel, []string{"Query"}) {
		if i > 0 {
			w.WriteByte(',')
		}

		writeKey(w, f.Alias)

		switch f.Name {
		case "__typename":
			graphql.MarshalString("Query").MarshalGQL(w)
		case "__schema", "__type":
			ec.fail(w, f, errIntrospectionDisabled)
		case "rates":
			page, err := ec.resolver.Rates(ctx, f.ArgumentMap(ec.opCtx.Variables))
			if err != nil {
				ec.fail(w, f, err)

				continue
			}

			ec.ratePage(w, f.Selections, page)
		case "history":
			page, err := ec.resolver.History(ctx, f.ArgumentMap(ec.opCtx.Variables))
			if err != nil {
				ec.fail(w, f, err)

				continue
			}

			ec.ratePage(w, f.Selections, page)
		case "sources":
			items, err := ec.resolver.Sources(ctx)
			if err != nil {
				ec.fail(w, f, err)

				continue
			}

			writeStrings(w, items)
		case "currencies":
			items, err := ec.resolver.Currencies(ctx)
			if err != nil {
				ec.fail(w, f, err)

				continue
			}

			writeStrings(w, items)
		default:
			ec.fail(w, f, fmt.Errorf("unknown field %q", f.Name))
		}
	}

	w.WriteByte('}')
}

func (ec *execution) ratePage(w *bytes.Buffer, sel ast.SelectionSet, page *types.Page[*types.ExchangeRate]) {
	w.WriteByte('{')

	for i, f := range graphql.CollectFields(ec.opCtx, sel, []string{"RatePage"}) {
		if i > 0 {
			w.WriteByte(',')
		}

		writeKey(w, f.Alias)

		switch f.Name {
		case "__typename":
			graphql.MarshalString("RatePage").MarshalGQL(w)
		case "results":
			w.WriteByte('[')

			for j, rate := range page.Results {
				if j > 0 {
					w.WriteByte(',')
				}

				ec.exchangeRate(w, f.Selections, rate)
			}

			w.WriteByte(']')
		case "total":
			graphql.MarshalInt(int(clampTotalToInt32(page.Total))).MarshalGQL(w)
		default:
			graphql.Null.MarshalGQL(w)
		}
	}

	w.WriteByte('}')
}

func (ec *execution) exchangeRate(w *bytes.Buffer, sel ast.SelectionSet, rate *types.ExchangeRate) {
	w.WriteByte('{')

	for i, f := range graphql.CollectFields(ec.opCtx, sel, []string{"ExchangeRate"}) {
		if i > 0 {
			w.WriteByte(',')
		}

		writeKey(w, f.Alias)

		var m graphql.Marshaler

		switch f.Name {
		case "__typename":
			m = graphql.MarshalString("ExchangeRate")
		case "asOf":
			m = model.MarshalTime(model.Time(rate.AsOf))
		case "fetchedAt":
			m = model.MarshalTime(model.Time(rate.FetchedAt))
		case "base":
			m = graphql.MarshalString(rate.Base.String())
		case "target":
			m = graphql.MarshalString(rate.Target.String())
		case "rateType":
			m = graphql.MarshalString(rate.RateType.String())
		case "source":
			m = graphql.MarshalString(rate.Source.String())
		case "rate":
			m = graphql.MarshalString(rate.Rate.String())
		default:
			m = graphql.Null
		}

		m.MarshalGQL(w)
	}

	w.WriteByte('}')
}

// fail nulls the field, and records the error at its path
func (ec *execution) fail(w *bytes.Buffer, f graphql.CollectedField, err error) {
	graphql.Null.MarshalGQL(w)

	ec.errors = append(ec.errors, &gqlerror.Error{
		Err:     err,
		Message: err.Error(),
		Path:    ast.Path{ast.PathName(f.Alias)},
	})
}

func writeKey(w *bytes.Buffer, key string) {
	graphql.MarshalString(key).MarshalGQL(w)
	w.WriteByte(':')
}

func writeStrings(w *bytes.Buffer, items []string) {
	w.WriteByte('[')

	for i, item := range items {
		if i > 0 {
			w.WriteByte(',')
		}

		graphql.MarshalString(item).MarshalGQL(w)
	}

	w.WriteByte(']')
}

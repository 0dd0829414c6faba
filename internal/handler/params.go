package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/locvowork/orderdash/internal/query"
)

const dateLayout = "2006-01-02"

// ParseFilterSpec reads the filter query parameters shared by every dashboard endpoint.
// status, source and policy may repeat; a single occurrence may carry comma-separated
// values. Repeat the parameter to select a value that itself contains a comma.
func ParseFilterSpec(params url.Values) (query.FilterSpec, error) {
	var opts []query.FilterOption

	if v := strings.TrimSpace(params.Get("from")); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			return query.FilterSpec{}, fmt.Errorf("invalid from date %q: %w", v, err)
		}
		opts = append(opts, query.WithDateFrom(from))
	}
	if v := strings.TrimSpace(params.Get("to")); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			return query.FilterSpec{}, fmt.Errorf("invalid to date %q: %w", v, err)
		}
		opts = append(opts, query.WithDateTo(to))
	}

	opts = append(opts,
		query.WithSalesperson(params.Get("salesperson")),
		query.WithCustomer(params.Get("customer")),
		query.WithStatuses(multi(params, "status")...),
		query.WithSources(multi(params, "source")...),
		query.WithPolicies(multi(params, "policy")...),
	)
	return query.NewFilterSpec(opts...)
}

func multi(params url.Values, key string) []string {
	values := params[key]
	if len(values) == 1 {
		return strings.Split(values[0], ",")
	}
	return values
}

// intParam returns the non-negative integer parameter, or fallback when absent.
func intParam(params url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(params.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sportcenter/shift-manager/internal/pkg/validator"
)

// queryInt reads a required integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s parameter is required", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return n, nil
}

// queryMonthYear reads the month and year query parameters.
func queryMonthYear(r *http.Request) (month, year int, err error) {
	if month, err = queryInt(r, "month"); err != nil {
		return 0, 0, err
	}
	if year, err = queryInt(r, "year"); err != nil {
		return 0, 0, err
	}
	return month, year, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter", name)
	}
	return b, nil
}

// queryList reads a comma-separated id list.
func queryList(r *http.Request, name string) []string {
	return validator.SplitList(r.URL.Query().Get(name))
}

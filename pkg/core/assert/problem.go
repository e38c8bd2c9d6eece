//
//  Copyright © Altinn. All rights reserved.
//

package assert

import (
	"net/http"
	"sort"
	"strings"
)

// ProblemDetails carries a merged validation error map in the RFC 7807
// problem-details shape, suitable for returning directly from the REST
// endpoint.
type ProblemDetails struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
	Errors Errors `json:"errors"`
}

// Summary returns the failing rule names, sorted, for embedding in log
// and error messages.
func (p *ProblemDetails) Summary() string {
	keys := make([]string, 0, len(p.Errors))
	for k := range p.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func newProblem(errs Errors) *ProblemDetails {
	return &ProblemDetails{
		Type:   "https://tools.ietf.org/html/rfc7807",
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: errs,
	}
}

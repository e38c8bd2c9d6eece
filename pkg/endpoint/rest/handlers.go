//
//  Copyright © Altinn. All rights reserved.
//

package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/altinn/accessmgmt/pkg/core"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/model"
)

type handlers struct {
	engine core.Engine
}

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	Attributes []attribute.AttributeMatch `json:"attributes"`
	Wanted     []string                   `json:"wanted"`
}

// ResolveResponse is the body returned by POST /api/v1/resolve.
type ResolveResponse struct {
	Attributes []attribute.AttributeMatch `json:"attributes"`
}

// CheckRequest is the body of POST /api/v1/delegations/check.
type CheckRequest struct {
	From     []attribute.AttributeMatch `json:"from"`
	To       []attribute.AttributeMatch `json:"to"`
	Resource []attribute.AttributeMatch `json:"resource"`
}

// ErrorResponse carries a terminal error back to the caller.
type ErrorResponse struct {
	Error string `json:"error"`
}

func fail(c echo.Context, err error) error {
	return c.JSON(httpStatus(err), ErrorResponse{Error: err.Error()})
}

func (h *handlers) resolve(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	attributes, err := h.engine.Resolve(c.Request().Context(), req.Attributes, req.Wanted)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ResolveResponse{Attributes: attributes})
}

func (h *handlers) check(c echo.Context) error {
	var req CheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	// validation failures ride inside the Decision, not the status code
	decision, err := h.engine.CheckDelegation(c.Request().Context(), req.From, req.To, req.Resource)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, decision)
}

func (h *handlers) delegate(c echo.Context) error {
	var req model.DelegationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	change, err := h.engine.Delegate(c.Request().Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, change)
}

func (h *handlers) revoke(c echo.Context) error {
	var req model.DelegationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	change, err := h.engine.Revoke(c.Request().Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, change)
}

func (h *handlers) partyID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("partyID"))
}

func (h *handlers) offered(c echo.Context) error {
	partyID, err := h.partyID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "partyID must be numeric"})
	}

	delegations, err := h.engine.GetOfferedDelegations(c.Request().Context(), partyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, delegations)
}

func (h *handlers) received(c echo.Context) error {
	partyID, err := h.partyID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "partyID must be numeric"})
	}

	delegations, err := h.engine.GetReceivedDelegations(c.Request().Context(), partyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, delegations)
}

//
//  Copyright © Altinn. All rights reserved.
//

// Package resolver implements the recursive, URN-keyed attribute
// resolver tree.
//
// Given a sparse set of known attributes and a set of wanted attribute
// ids, the resolver derives the closure of attributes reachable through
// external lookups (party registry, user profile, resource registry).
// The tree mirrors the URN namespace: the root node owns the
// "urn:altinn" prefix and delegates to one child per subject namespace
// (person, organization, enterpriseuser, resource). Adding a new
// subject type means adding a sibling node; existing nodes are never
// touched.
//
// # Resolution Model
//
// Each [Node] strips its own namespace prefix from attributes and
// wanted ids before consulting its leaves and children, and
// re-qualifies produced attributes on the way back up. Leaves within a
// node resolve iteratively to a fixed point: every round runs all
// still-pending leaves whose required inputs are satisfied, so a leaf
// may consume attributes produced by another leaf in an earlier round.
// Leaves are single-use per pass, which bounds the iteration by the
// number of leaves. Sibling branches are independent namespaces and
// resolve concurrently.
//
// A lookup that finds nothing is not an error: the leaf simply
// contributes no new facts, and the wanted attribute stays unresolved.
// Downstream authorization logic treats the absence as "not authorized".
package resolver

import (
	"context"
	"strings"
	"sync"

	"github.com/altinn/accessmgmt/internal/logging"
	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
)

var logger = logging.GetLogger("accessmgmt.resolver")

const agent = "resolver"

// LeafFunc derives new attributes from the known set via exactly one
// external lookup. It returns an empty result when the lookup finds
// nothing; errors are reserved for infrastructure failures.
type LeafFunc func(ctx context.Context, known []attribute.AttributeMatch) ([]attribute.AttributeMatch, error)

// Leaf is a single resolution step within a node, declaring the
// attribute ids it consumes and the ids it may produce. Ids are
// unqualified relative to the owning node's namespace.
type Leaf struct {
	// RequiredInputs must all be present in the known set before the
	// leaf may run.
	RequiredInputs []string
	// PossibleOutputs enumerates every attribute id the leaf can produce.
	PossibleOutputs []string
	// Resolve performs the lookup.
	Resolve LeafFunc
}

func (l Leaf) inputsSatisfied(known []attribute.AttributeMatch) bool {
	for _, in := range l.RequiredInputs {
		if !attribute.Has(known, in) {
			return false
		}
	}
	return true
}

func (l Leaf) producesAnyOf(wanted []string) bool {
	for _, out := range l.PossibleOutputs {
		for _, w := range wanted {
			if strings.EqualFold(out, w) {
				return true
			}
		}
	}
	return false
}

// Resolver is one node of the resolver tree.
type Resolver interface {
	// Name is the namespace segment the resolver owns.
	Name() string

	// Resolve derives attributes within the resolver's namespace.
	// Attributes and wanted ids outside the namespace pass through
	// untouched. The result is the deduplicated union of the input
	// attributes and everything derived.
	Resolve(ctx context.Context, attributes []attribute.AttributeMatch, wanted []string) ([]attribute.AttributeMatch, error)
}

// Node composes leaves and child resolvers under one namespace segment.
// A Node is stateless after construction and safe for concurrent use.
type Node struct {
	name     string
	leaves   []Leaf
	children []Resolver
}

// NewNode creates a resolver node owning the given namespace segment.
func NewNode(name string, leaves []Leaf, children ...Resolver) *Node {
	return &Node{name: name, leaves: leaves, children: children}
}

// Name returns the namespace segment the node owns.
func (n *Node) Name() string {
	return n.name
}

// strip removes the node's namespace prefix from the id, reporting
// whether the id was in scope. Matching ignores case.
func (n *Node) strip(id string) (string, bool) {
	prefix := n.name + ":"
	if len(id) > len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
		return id[len(prefix):], true
	}
	return "", false
}

// Resolve implements [Resolver].
func (n *Node) Resolve(ctx context.Context, attributes []attribute.AttributeMatch, wanted []string) ([]attribute.AttributeMatch, error) {
	local := make([]attribute.AttributeMatch, 0, len(attributes))
	foreign := make([]attribute.AttributeMatch, 0, len(attributes))
	for _, a := range attributes {
		if id, ok := n.strip(a.ID); ok {
			local = append(local, attribute.AttributeMatch{ID: id, Value: a.Value})
		} else {
			foreign = append(foreign, a)
		}
	}

	localWanted := make([]string, 0, len(wanted))
	for _, w := range wanted {
		if id, ok := n.strip(w); ok {
			localWanted = append(localWanted, id)
		}
	}

	local, err := n.resolveLeaves(ctx, local, localWanted)
	if err != nil {
		return nil, err
	}

	local, err = n.resolveChildren(ctx, local, attribute.Missing(local, localWanted))
	if err != nil {
		return nil, err
	}

	out := make([]attribute.AttributeMatch, 0, len(local)+len(foreign))
	for _, a := range local {
		out = append(out, attribute.AttributeMatch{ID: n.name + ":" + a.ID, Value: a.Value})
	}
	out = append(out, foreign...)
	return attribute.Dedup(out), nil
}

// resolveLeaves runs the node's leaves to a fixed point. Each round
// executes, concurrently, every still-pending leaf whose inputs are
// satisfied. Leaves whose possible outputs intersect the missing wanted
// set are preferred; other eligible leaves run only when no preferred
// leaf exists, which keeps cross-namespace derivation chains alive
// without invoking lookups whose results nothing asked for.
func (n *Node) resolveLeaves(ctx context.Context, known []attribute.AttributeMatch, wanted []string) ([]attribute.AttributeMatch, error) {
	pending := make([]Leaf, len(n.leaves))
	copy(pending, n.leaves)

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, common.WrapError(common.KindCancelled, err, "attribute resolution cancelled")
		}

		missing := attribute.Missing(known, wanted)
		if len(missing) == 0 {
			break
		}

		batch, rest := selectBatch(pending, known, missing)
		if len(batch) == 0 {
			// fixed point: no pending leaf can make progress
			break
		}

		results := make([][]attribute.AttributeMatch, len(batch))
		errs := make([]error, len(batch))

		wg := sync.WaitGroup{}
		wg.Add(len(batch))
		for i, leaf := range batch {
			go func(i int, leaf Leaf) {
				defer wg.Done()
				results[i], errs[i] = leaf.Resolve(ctx, known)
			}(i, leaf)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}

		pending = rest
		for _, produced := range results {
			known = append(known, produced...)
		}
		known = attribute.Dedup(known)
	}

	return known, nil
}

// selectBatch partitions pending leaves into the batch to run now and
// the rest. Preferred leaves (inputs satisfied, outputs wanted) win;
// when there are none, every eligible leaf runs so that intermediate
// attributes needed by other leaves or sibling namespaces still get
// produced.
func selectBatch(pending []Leaf, known []attribute.AttributeMatch, missing []string) (batch, rest []Leaf) {
	eligible := make([]bool, len(pending))
	preferred := make([]bool, len(pending))
	anyPreferred := false
	for i, leaf := range pending {
		if !leaf.inputsSatisfied(known) {
			continue
		}
		eligible[i] = true
		if leaf.producesAnyOf(missing) {
			preferred[i] = true
			anyPreferred = true
		}
	}

	selected := preferred
	if !anyPreferred {
		selected = eligible
	}

	for i, leaf := range pending {
		if selected[i] {
			batch = append(batch, leaf)
		} else {
			rest = append(rest, leaf)
		}
	}
	return batch, rest
}

// resolveChildren fans out to the node's children concurrently.
// Children are independent namespaces, so there is no ordering between
// them; their results are unioned and deduplicated.
func (n *Node) resolveChildren(ctx context.Context, known []attribute.AttributeMatch, missing []string) ([]attribute.AttributeMatch, error) {
	if len(n.children) == 0 {
		return known, nil
	}

	results := make([][]attribute.AttributeMatch, len(n.children))
	errs := make([]error, len(n.children))

	wg := sync.WaitGroup{}
	wg.Add(len(n.children))
	for i, child := range n.children {
		go func(i int, child Resolver) {
			defer wg.Done()
			results[i], errs[i] = child.Resolve(ctx, known, missing)
		}(i, child)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, r := range results {
		known = append(known, r...)
	}
	return attribute.Dedup(known), nil
}

// Service drives resolution over a resolver tree, iterating the whole
// tree until the wanted set is satisfied or a full pass derives nothing
// new. The service is stateless and safe for concurrent use.
type Service struct {
	root Resolver
}

// NewService creates a resolution service over the given root resolver.
func NewService(root Resolver) *Service {
	return &Service{root: root}
}

// Resolve derives the closure of the known attributes toward the wanted
// set. The result always contains the (deduplicated) input attributes;
// wanted ids that could not be derived are simply absent.
func (s *Service) Resolve(ctx context.Context, attributes []attribute.AttributeMatch, wanted []string) ([]attribute.AttributeMatch, error) {
	known := attribute.Dedup(attributes)

	for {
		if attribute.Satisfied(known, wanted) {
			return known, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, common.WrapError(common.KindCancelled, err, "attribute resolution cancelled")
		}

		result, err := s.root.Resolve(ctx, known, attribute.Missing(known, wanted))
		if err != nil {
			return nil, err
		}

		merged := attribute.Dedup(append(known, result...))
		if len(merged) == len(known) {
			logger.Debugf(agent, "Resolve", "fixed point reached with %d attributes, %d wanted ids unresolved",
				len(merged), len(attribute.Missing(merged, wanted)))
			return merged, nil
		}
		known = merged
	}
}
